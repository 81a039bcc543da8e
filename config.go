package k4a

// DepthMode selects the depth sensor capture mode.
type DepthMode int32

// Depth modes, matching the native ABI codes.
const (
	DepthModeOff           DepthMode = 0
	DepthModeNFOV2x2Binned DepthMode = 1
	DepthModeNFOVUnbinned  DepthMode = 2
	DepthModeWFOV2x2Binned DepthMode = 3
	DepthModeWFOVUnbinned  DepthMode = 4
	DepthModePassiveIR     DepthMode = 5
)

// Resolution returns the depth camera sensor size for the mode, or false
// for DepthModeOff.
func (m DepthMode) Resolution() (Resolution, bool) {
	switch m {
	case DepthModeNFOV2x2Binned:
		return Resolution{Width: 320, Height: 288}, true
	case DepthModeNFOVUnbinned:
		return Resolution{Width: 640, Height: 576}, true
	case DepthModeWFOV2x2Binned:
		return Resolution{Width: 512, Height: 512}, true
	case DepthModeWFOVUnbinned, DepthModePassiveIR:
		return Resolution{Width: 1024, Height: 1024}, true
	default:
		return Resolution{}, false
	}
}

// String returns a human readable name for the depth mode.
func (m DepthMode) String() string {
	switch m {
	case DepthModeOff:
		return "Off"
	case DepthModeNFOV2x2Binned:
		return "NFOV2x2Binned"
	case DepthModeNFOVUnbinned:
		return "NFOVUnbinned"
	case DepthModeWFOV2x2Binned:
		return "WFOV2x2Binned"
	case DepthModeWFOVUnbinned:
		return "WFOVUnbinned"
	case DepthModePassiveIR:
		return "PassiveIR"
	default:
		return "Unknown"
	}
}

// ColorResolution selects the color sensor capture resolution.
type ColorResolution int32

// Color resolutions, matching the native ABI codes.
const (
	ColorResolutionOff   ColorResolution = 0
	ColorResolution720p  ColorResolution = 1
	ColorResolution1080p ColorResolution = 2
	ColorResolution1440p ColorResolution = 3
	ColorResolution1536p ColorResolution = 4
	ColorResolution2160p ColorResolution = 5
	ColorResolution3072p ColorResolution = 6
)

// Resolution returns the color camera sensor size, or false for
// ColorResolutionOff.
func (r ColorResolution) Resolution() (Resolution, bool) {
	switch r {
	case ColorResolution720p:
		return Resolution{Width: 1280, Height: 720}, true
	case ColorResolution1080p:
		return Resolution{Width: 1920, Height: 1080}, true
	case ColorResolution1440p:
		return Resolution{Width: 2560, Height: 1440}, true
	case ColorResolution1536p:
		return Resolution{Width: 2048, Height: 1536}, true
	case ColorResolution2160p:
		return Resolution{Width: 3840, Height: 2160}, true
	case ColorResolution3072p:
		return Resolution{Width: 4096, Height: 3072}, true
	default:
		return Resolution{}, false
	}
}

// String returns a human readable name for the color resolution.
func (r ColorResolution) String() string {
	switch r {
	case ColorResolutionOff:
		return "Off"
	case ColorResolution720p:
		return "720p"
	case ColorResolution1080p:
		return "1080p"
	case ColorResolution1440p:
		return "1440p"
	case ColorResolution1536p:
		return "1536p"
	case ColorResolution2160p:
		return "2160p"
	case ColorResolution3072p:
		return "3072p"
	default:
		return "Unknown"
	}
}

// FPS selects the camera frame rate.
type FPS int32

// Frame rates, matching the native ABI codes. The zero value is 5 FPS.
const (
	FPS5  FPS = 0
	FPS15 FPS = 1
	FPS30 FPS = 2
)

// WiredSyncMode selects how a device participates in wired multi device
// synchronization.
type WiredSyncMode int32

// Wired sync modes, matching the native ABI codes.
const (
	WiredSyncModeStandalone  WiredSyncMode = 0
	WiredSyncModeMaster      WiredSyncMode = 1
	WiredSyncModeSubordinate WiredSyncMode = 2
)

// DeviceConfiguration configures the color and depth cameras for streaming.
type DeviceConfiguration struct {
	ColorFormat     ImageFormat
	ColorResolution ColorResolution
	DepthMode       DepthMode
	CameraFPS       FPS
	// SynchronizedImagesOnly restricts delivery to captures holding both a
	// color and a depth image.
	SynchronizedImagesOnly bool
	DepthDelayOffColorUsec int32
	WiredSyncMode          WiredSyncMode
	// SubordinateDelayOffMasterUsec delays this device's captures relative
	// to the master when WiredSyncMode is subordinate.
	SubordinateDelayOffMasterUsec uint32
	DisableStreamingIndicator     bool
}

// DefaultConfiguration returns the baseline configuration: MJPEG color at
// 720p and wide field of view depth with 2x2 binning, with every frame rate,
// timing, and sync field left at its zero value.
func DefaultConfiguration() DeviceConfiguration {
	return DeviceConfiguration{
		ColorFormat:     FormatColorMJPEG,
		ColorResolution: ColorResolution720p,
		DepthMode:       DepthModeWFOV2x2Binned,
	}
}

// DisableAllConfiguration returns the configuration with every sensor
// disabled, matching the native K4A_DEVICE_CONFIG_INIT_DISABLE_ALL
// initializer.
func DisableAllConfiguration() DeviceConfiguration {
	return DeviceConfiguration{
		ColorFormat:     FormatColorMJPEG,
		ColorResolution: ColorResolutionOff,
		DepthMode:       DepthModeOff,
		CameraFPS:       FPS30,
		WiredSyncMode:   WiredSyncModeStandalone,
	}
}
