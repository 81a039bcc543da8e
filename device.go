package k4a

import (
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Device is an open connection to a single Azure Kinect. A Device has one
// owner: close it exactly once when done. StopCameras may be called from
// another goroutine to unblock a pending GetCapture, but Close must not race
// any other call.
type Device struct {
	sdk    SDK
	handle DeviceHandle

	mu     sync.Mutex
	closed bool
}

// InstalledCount reports the number of attached devices.
func InstalledCount() (uint32, error) {
	sdk, err := DefaultSDK()
	if err != nil {
		return 0, err
	}
	return sdk.DeviceGetInstalledCount(), nil
}

// Open opens the attached device at index (0 for the first device) against
// the registered SDK.
func Open(index uint32) (*Device, error) {
	sdk, err := DefaultSDK()
	if err != nil {
		return nil, err
	}
	return OpenWithSDK(sdk, index)
}

// OpenWithSDK opens the attached device at index against an explicit SDK
// implementation.
func OpenWithSDK(sdk SDK, index uint32) (*Device, error) {
	handle, res := sdk.DeviceOpen(index)
	if res != ResultSucceeded {
		return nil, &DeviceOpenError{Code: res}
	}
	return &Device{sdk: sdk, handle: handle}, nil
}

func (d *Device) borrow() (DeviceHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, ErrClosed
	}
	return d.handle, nil
}

// Handle returns the underlying native handle without transferring
// ownership. After Close it returns the null handle.
func (d *Device) Handle() DeviceHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0
	}
	return d.handle
}

// SerialNumber reads the device serial number. The native layer reports the
// required buffer size first, so this performs two calls.
func (d *Device) SerialNumber() (string, error) {
	h, err := d.borrow()
	if err != nil {
		return "", err
	}
	size, res := d.sdk.DeviceGetSerialNum(h, nil)
	if res != BufferResultTooSmall {
		return "", &SerialNumberError{Code: res}
	}
	buf := make([]byte, size)
	n, res := d.sdk.DeviceGetSerialNum(h, buf)
	if res != BufferResultSucceeded {
		return "", &SerialNumberError{Code: res}
	}
	buf = buf[:n]
	// The reported length includes the trailing NUL.
	if len(buf) > 0 && buf[len(buf)-1] == 0 {
		buf = buf[:len(buf)-1]
	}
	if !utf8.Valid(buf) {
		return "", errors.Wrapf(ErrSerialNumberEncoding, "raw bytes %q", buf)
	}
	return string(buf), nil
}

// SyncJackStatus reads whether cables are attached to the sync in and sync
// out jacks.
func (d *Device) SyncJackStatus() (SynchronizationJackStatus, error) {
	h, err := d.borrow()
	if err != nil {
		return SynchronizationJackStatus{}, err
	}
	in, out, res := d.sdk.DeviceGetSyncJack(h)
	if res != ResultSucceeded {
		return SynchronizationJackStatus{}, &SyncJackError{Code: res}
	}
	return SynchronizationJackStatus{SyncInConnected: in, SyncOutConnected: out}, nil
}

// StartCameras starts the color and depth cameras streaming with the given
// configuration.
func (d *Device) StartCameras(config DeviceConfiguration) error {
	h, err := d.borrow()
	if err != nil {
		return err
	}
	if res := d.sdk.DeviceStartCameras(h, &config); res != ResultSucceeded {
		return &StartCamerasError{Code: res}
	}
	return nil
}

// StartCamerasDefault starts the cameras with a high quality preset: BGRA32
// color at 2160p and narrow field of view unbinned depth, at 30 FPS.
func (d *Device) StartCamerasDefault() error {
	return d.StartCameras(DeviceConfiguration{
		ColorFormat:     FormatColorBGRA32,
		ColorResolution: ColorResolution2160p,
		DepthMode:       DepthModeNFOVUnbinned,
		CameraFPS:       FPS30,
	})
}

// StopCameras stops streaming. It is safe to call at any time, including
// while another goroutine is blocked in GetCapture; that wait fails instead
// of hanging.
func (d *Device) StopCameras() {
	h, err := d.borrow()
	if err != nil {
		return
	}
	d.sdk.DeviceStopCameras(h)
}

// GetCapture waits up to timeoutMS milliseconds for the next capture. Pass 0
// to poll and WaitInfinite to block until a capture arrives. A quiet period
// yields ErrCaptureTimeout; the caller owns the returned capture and must
// close it.
func (d *Device) GetCapture(timeoutMS int32) (*Capture, error) {
	h, err := d.borrow()
	if err != nil {
		return nil, err
	}
	handle, res := d.sdk.DeviceGetCapture(h, timeoutMS)
	switch res {
	case WaitResultSucceeded:
		return newCapture(d.sdk, handle), nil
	case WaitResultTimeout:
		return nil, errors.Wrapf(ErrCaptureTimeout, "after %dms", timeoutMS)
	case WaitResultFailed:
		return nil, ErrCaptureFailed
	default:
		return nil, &CaptureWaitError{Code: res}
	}
}

// Calibration reads the transcribed calibration for the given depth mode and
// color resolution. The returned value is meaningful only when the error is
// nil.
func (d *Device) Calibration(depthMode DepthMode, resolution ColorResolution) (Calibration, error) {
	h, err := d.borrow()
	if err != nil {
		return Calibration{}, err
	}
	cal, res := d.sdk.DeviceGetCalibration(h, depthMode, resolution)
	switch res {
	case ResultSucceeded:
		return cal, nil
	case ResultFailed:
		return Calibration{}, ErrCalibrationFailed
	default:
		return Calibration{}, &CalibrationError{Code: res}
	}
}

// Close closes the native device handle. Further calls are no-ops. It is
// safe to close a device whose cameras were never started.
func (d *Device) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	h := d.handle
	d.handle = 0
	d.mu.Unlock()
	d.sdk.DeviceClose(h)
}
