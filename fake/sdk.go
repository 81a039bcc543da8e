// Package fake simulates the native k4a layer in pure Go. It honors the
// same reference counting contract as the shared library and panics loudly
// on misuse that would be undefined behavior against real hardware, which
// makes it the backend of choice for tests and development without a
// device.
package fake

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/utils"

	"go.viam.com/k4a"
)

// SDK is a simulated native layer. Attach devices with AddDevice, then
// drive the root package as if the real library were loaded.
type SDK struct {
	clock clock.Clock

	mu         sync.Mutex
	devices    []*Device
	byHandle   map[k4a.DeviceHandle]*Device
	captures   map[k4a.CaptureHandle]*captureEntry
	images     map[k4a.ImageHandle]*imageEntry
	transforms map[k4a.TransformationHandle]transformEntry
	nextHandle uintptr
}

type captureEntry struct {
	refs  utils.RefCountedValue
	depth k4a.ImageHandle
	color k4a.ImageHandle
	ir    k4a.ImageHandle
}

type imageEntry struct {
	refs   utils.RefCountedValue
	format k4a.ImageFormat
	width  int32
	height int32
	stride int32
	buf    []byte
}

type transformEntry struct {
	color k4a.Resolution
	depth k4a.Resolution
}

// NewSDK returns a simulation with no devices attached.
func NewSDK() *SDK {
	return NewSDKWithClock(clock.New())
}

// NewSDKWithClock returns a simulation whose capture waits run against the
// given clock, letting tests drive timeouts deterministically.
func NewSDKWithClock(c clock.Clock) *SDK {
	return &SDK{
		clock:      c,
		byHandle:   map[k4a.DeviceHandle]*Device{},
		captures:   map[k4a.CaptureHandle]*captureEntry{},
		images:     map[k4a.ImageHandle]*imageEntry{},
		transforms: map[k4a.TransformationHandle]transformEntry{},
	}
}

// Register installs a fresh simulation as the process wide SDK and returns
// it for configuration.
func Register() *SDK {
	sdk := NewSDK()
	k4a.RegisterSDK(sdk)
	return sdk
}

func (s *SDK) allocHandleLocked() uintptr {
	s.nextHandle++
	return s.nextHandle
}

func (s *SDK) deviceLocked(handle k4a.DeviceHandle) *Device {
	dev, ok := s.byHandle[handle]
	if !ok {
		panic(fmt.Sprintf("fake: unknown device handle %#x", uintptr(handle)))
	}
	return dev
}

func (s *SDK) captureLocked(handle k4a.CaptureHandle) *captureEntry {
	entry, ok := s.captures[handle]
	if !ok {
		panic(fmt.Sprintf("fake: unknown capture handle %#x", uintptr(handle)))
	}
	return entry
}

func (s *SDK) imageLocked(handle k4a.ImageHandle) *imageEntry {
	entry, ok := s.images[handle]
	if !ok {
		panic(fmt.Sprintf("fake: unknown image handle %#x", uintptr(handle)))
	}
	return entry
}

func (s *SDK) releaseImageLocked(handle k4a.ImageHandle) {
	if s.imageLocked(handle).refs.Deref() {
		delete(s.images, handle)
	}
}

func (s *SDK) releaseCaptureLocked(handle k4a.CaptureHandle) {
	entry := s.captureLocked(handle)
	if !entry.refs.Deref() {
		return
	}
	for _, img := range []k4a.ImageHandle{entry.depth, entry.color, entry.ir} {
		if img != 0 {
			s.releaseImageLocked(img)
		}
	}
	delete(s.captures, handle)
}

func (s *SDK) dropPendingLocked(dev *Device) {
	for _, handle := range dev.pending {
		s.releaseCaptureLocked(handle)
	}
	dev.pending = nil
}

func (s *SDK) insertImageLocked(format k4a.ImageFormat, width, height, stride int32, buf []byte) k4a.ImageHandle {
	handle := k4a.ImageHandle(s.allocHandleLocked())
	entry := &imageEntry{
		refs:   utils.NewRefCountedValue(handle),
		format: format,
		width:  width,
		height: height,
		stride: stride,
		buf:    buf,
	}
	entry.refs.Ref()
	s.images[handle] = entry
	return handle
}

// AddDevice attaches a simulated device with the given serial number and
// returns it for further configuration.
func (s *SDK) AddDevice(serial string) *Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	dev := &Device{
		sdk:    s,
		serial: serial,
		notify: make(chan struct{}),
	}
	s.devices = append(s.devices, dev)
	return dev
}

// DeviceGetInstalledCount implements k4a.SDK.
func (s *SDK) DeviceGetInstalledCount() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint32(len(s.devices))
}

// DeviceOpen implements k4a.SDK. Opening an out of range index or an
// already open device fails, like the native layer.
func (s *SDK) DeviceOpen(index uint32) (k4a.DeviceHandle, k4a.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(index) >= len(s.devices) {
		return 0, k4a.ResultFailed
	}
	dev := s.devices[index]
	if dev.open {
		return 0, k4a.ResultFailed
	}
	handle := k4a.DeviceHandle(s.allocHandleLocked())
	dev.open = true
	dev.streaming = false
	dev.handle = handle
	s.byHandle[handle] = dev
	return handle, k4a.ResultSucceeded
}

// DeviceClose implements k4a.SDK. Queued captures are dropped and a blocked
// capture wait fails. The device can be opened again afterward.
func (s *SDK) DeviceClose(device k4a.DeviceHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dev := s.deviceLocked(device)
	dev.open = false
	dev.streaming = false
	s.dropPendingLocked(dev)
	delete(s.byHandle, device)
	dev.handle = 0
	dev.wakeLocked()
}

// DeviceGetSerialNum implements k4a.SDK, honoring the native size
// negotiation: a nil or short buf reports the required size, including the
// trailing NUL.
func (s *SDK) DeviceGetSerialNum(device k4a.DeviceHandle, buf []byte) (int, k4a.BufferResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dev := s.deviceLocked(device)
	needed := len(dev.serial) + 1
	if len(buf) < needed {
		return needed, k4a.BufferResultTooSmall
	}
	copy(buf, dev.serial)
	buf[len(dev.serial)] = 0
	return needed, k4a.BufferResultSucceeded
}

// DeviceGetSyncJack implements k4a.SDK.
func (s *SDK) DeviceGetSyncJack(device k4a.DeviceHandle) (bool, bool, k4a.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dev := s.deviceLocked(device)
	return dev.syncIn, dev.syncOut, k4a.ResultSucceeded
}

// DeviceStartCameras implements k4a.SDK, enforcing the native configuration
// constraints: at least one sensor enabled, synchronized images need both
// sensors, NV12 and YUY2 only stream at 720p, the widest modes cannot run
// at 30 FPS, and cameras cannot start twice.
func (s *SDK) DeviceStartCameras(device k4a.DeviceHandle, config *k4a.DeviceConfiguration) k4a.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	dev := s.deviceLocked(device)
	if dev.streaming {
		return k4a.ResultFailed
	}
	if config.DepthMode == k4a.DepthModeOff && config.ColorResolution == k4a.ColorResolutionOff {
		return k4a.ResultFailed
	}
	if config.SynchronizedImagesOnly &&
		(config.DepthMode == k4a.DepthModeOff || config.ColorResolution == k4a.ColorResolutionOff) {
		return k4a.ResultFailed
	}
	if config.ColorResolution != k4a.ColorResolutionOff {
		switch config.ColorFormat {
		case k4a.FormatColorBGRA32, k4a.FormatColorMJPEG:
		case k4a.FormatColorNV12, k4a.FormatColorYUY2:
			if config.ColorResolution != k4a.ColorResolution720p {
				return k4a.ResultFailed
			}
		default:
			return k4a.ResultFailed
		}
	}
	if config.CameraFPS == k4a.FPS30 &&
		(config.DepthMode == k4a.DepthModeWFOVUnbinned || config.ColorResolution == k4a.ColorResolution3072p) {
		return k4a.ResultFailed
	}
	dev.streaming = true
	dev.config = *config
	return k4a.ResultSucceeded
}

// DeviceStopCameras implements k4a.SDK. Queued captures are dropped and a
// blocked capture wait fails rather than hangs.
func (s *SDK) DeviceStopCameras(device k4a.DeviceHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dev := s.deviceLocked(device)
	dev.streaming = false
	s.dropPendingLocked(dev)
	dev.wakeLocked()
}

// DeviceGetCapture implements k4a.SDK. A zero timeout polls once;
// k4a.WaitInfinite blocks until a frame arrives or streaming stops.
func (s *SDK) DeviceGetCapture(device k4a.DeviceHandle, timeoutMS int32) (k4a.CaptureHandle, k4a.WaitResult) {
	s.mu.Lock()
	dev := s.deviceLocked(device)
	s.mu.Unlock()

	var timeout <-chan time.Time
	if timeoutMS > 0 {
		timer := s.clock.Timer(time.Duration(timeoutMS) * time.Millisecond)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		s.mu.Lock()
		if !dev.open || !dev.streaming {
			s.mu.Unlock()
			return 0, k4a.WaitResultFailed
		}
		if len(dev.pending) > 0 {
			handle := dev.pending[0]
			dev.pending = dev.pending[1:]
			s.mu.Unlock()
			return handle, k4a.WaitResultSucceeded
		}
		if timeoutMS == 0 {
			s.mu.Unlock()
			return 0, k4a.WaitResultTimeout
		}
		wake := dev.notify
		s.mu.Unlock()

		select {
		case <-wake:
		case <-timeout:
			return 0, k4a.WaitResultTimeout
		}
	}
}

// DeviceGetCalibration implements k4a.SDK. Without an override installed by
// SetCalibration, the fixture numbers follow a typical factory calibration
// scaled to the requested modes. Asking with both sensors off fails.
func (s *SDK) DeviceGetCalibration(
	device k4a.DeviceHandle,
	depthMode k4a.DepthMode,
	resolution k4a.ColorResolution,
) (k4a.Calibration, k4a.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dev := s.deviceLocked(device)
	if depthMode == k4a.DepthModeOff && resolution == k4a.ColorResolutionOff {
		return k4a.Calibration{}, k4a.ResultFailed
	}
	if dev.calibration != nil {
		cal := *dev.calibration
		cal.DepthMode = depthMode
		cal.ColorResolution = resolution
		return cal, k4a.ResultSucceeded
	}
	return NewCalibration(depthMode, resolution), k4a.ResultSucceeded
}

// CaptureGetDepthImage implements k4a.SDK. The returned handle carries a
// new reference; the null handle means the capture holds no depth image.
func (s *SDK) CaptureGetDepthImage(capture k4a.CaptureHandle) k4a.ImageHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.captureLocked(capture)
	if entry.depth == 0 {
		return 0
	}
	s.imageLocked(entry.depth).refs.Ref()
	return entry.depth
}

// CaptureGetColorImage implements k4a.SDK. The returned handle carries a
// new reference; the null handle means the capture holds no color image.
func (s *SDK) CaptureGetColorImage(capture k4a.CaptureHandle) k4a.ImageHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.captureLocked(capture)
	if entry.color == 0 {
		return 0
	}
	s.imageLocked(entry.color).refs.Ref()
	return entry.color
}

// CaptureGetIRImage implements k4a.SDK. The returned handle carries a new
// reference; the null handle means the capture holds no infrared image.
func (s *SDK) CaptureGetIRImage(capture k4a.CaptureHandle) k4a.ImageHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.captureLocked(capture)
	if entry.ir == 0 {
		return 0
	}
	s.imageLocked(entry.ir).refs.Ref()
	return entry.ir
}

// CaptureReference implements k4a.SDK.
func (s *SDK) CaptureReference(capture k4a.CaptureHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captureLocked(capture).refs.Ref()
}

// CaptureRelease implements k4a.SDK. Dropping the last reference frees the
// capture and releases the images it holds. Releasing more times than
// referenced panics; the same misuse is undefined against the real library.
func (s *SDK) CaptureRelease(capture k4a.CaptureHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseCaptureLocked(capture)
}

// ImageCreate implements k4a.SDK. A zero stride derives the tight stride
// for fixed layout formats; formats without one (MJPEG, custom blobs) must
// give a stride explicitly.
func (s *SDK) ImageCreate(format k4a.ImageFormat, widthPixels, heightPixels, strideBytes int32) (k4a.ImageHandle, k4a.Result) {
	if widthPixels <= 0 || heightPixels <= 0 || strideBytes < 0 {
		return 0, k4a.ResultFailed
	}
	if strideBytes == 0 {
		strideBytes = tightStride(format, widthPixels)
		if strideBytes == 0 {
			return 0, k4a.ResultFailed
		}
	}
	size := bufferSize(format, heightPixels, strideBytes)
	s.mu.Lock()
	defer s.mu.Unlock()
	handle := s.insertImageLocked(format, widthPixels, heightPixels, strideBytes, make([]byte, size))
	return handle, k4a.ResultSucceeded
}

func tightStride(format k4a.ImageFormat, width int32) int32 {
	switch format {
	case k4a.FormatColorNV12, k4a.FormatCustom8:
		return width
	case k4a.FormatColorYUY2, k4a.FormatDepth16, k4a.FormatIR16, k4a.FormatCustom16:
		return 2 * width
	case k4a.FormatColorBGRA32:
		return 4 * width
	default:
		return 0
	}
}

func bufferSize(format k4a.ImageFormat, height, stride int32) int32 {
	if format == k4a.FormatColorNV12 {
		// the interleaved chroma plane sits below the luma plane at half
		// height
		return stride * height * 3 / 2
	}
	return stride * height
}

// ImageGetWidthPixels implements k4a.SDK.
func (s *SDK) ImageGetWidthPixels(image k4a.ImageHandle) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imageLocked(image).width
}

// ImageGetHeightPixels implements k4a.SDK.
func (s *SDK) ImageGetHeightPixels(image k4a.ImageHandle) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imageLocked(image).height
}

// ImageGetStrideBytes implements k4a.SDK.
func (s *SDK) ImageGetStrideBytes(image k4a.ImageHandle) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imageLocked(image).stride
}

// ImageGetSize implements k4a.SDK.
func (s *SDK) ImageGetSize(image k4a.ImageHandle) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint64(len(s.imageLocked(image).buf))
}

// ImageGetBuffer implements k4a.SDK. The returned bytes are the image's
// backing store, shared with every holder of the handle.
func (s *SDK) ImageGetBuffer(image k4a.ImageHandle) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imageLocked(image).buf
}

// ImageGetFormat implements k4a.SDK.
func (s *SDK) ImageGetFormat(image k4a.ImageHandle) k4a.ImageFormat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imageLocked(image).format
}

// ImageReference implements k4a.SDK.
func (s *SDK) ImageReference(image k4a.ImageHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imageLocked(image).refs.Ref()
}

// ImageRelease implements k4a.SDK. Dropping the last reference frees the
// buffer; over releasing panics.
func (s *SDK) ImageRelease(image k4a.ImageHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseImageLocked(image)
}

// TransformationCreate implements k4a.SDK. A calibration without camera
// dimensions yields the null handle, mirroring native construction failure.
func (s *SDK) TransformationCreate(calibration *k4a.Calibration) k4a.TransformationHandle {
	if calibration.DepthResolutionWidth() <= 0 || calibration.DepthResolutionHeight() <= 0 ||
		calibration.ColorResolutionWidth() <= 0 || calibration.ColorResolutionHeight() <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	handle := k4a.TransformationHandle(s.allocHandleLocked())
	s.transforms[handle] = transformEntry{
		color: k4a.Resolution{Width: calibration.ColorResolutionWidth(), Height: calibration.ColorResolutionHeight()},
		depth: k4a.Resolution{Width: calibration.DepthResolutionWidth(), Height: calibration.DepthResolutionHeight()},
	}
	return handle
}

// TransformationDestroy implements k4a.SDK. Destroying an unknown or
// already destroyed handle panics.
func (s *SDK) TransformationDestroy(transformation k4a.TransformationHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transforms[transformation]; !ok {
		panic(fmt.Sprintf("fake: unknown transformation handle %#x", uintptr(transformation)))
	}
	delete(s.transforms, transformation)
}

// Leaked reports the native resources still alive: open devices, captures,
// and images. Tests use it to prove reference counting balanced out.
func (s *SDK) Leaked() (devices, captures, images int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byHandle), len(s.captures), len(s.images)
}
