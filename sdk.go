package k4a

import (
	"fmt"
	"sync"
)

// DeviceHandle is an opaque native device handle. The zero value is the
// null handle.
type DeviceHandle uintptr

// CaptureHandle is an opaque native capture handle. The zero value is the
// null handle.
type CaptureHandle uintptr

// ImageHandle is an opaque native image handle. The zero value is the
// null handle.
type ImageHandle uintptr

// TransformationHandle is an opaque native transformation handle. The zero
// value is the null handle.
type TransformationHandle uintptr

// Result is the status returned by most native calls.
type Result int32

// Result codes, matching the native ABI.
const (
	ResultSucceeded Result = 0
	ResultFailed    Result = 1
)

// String returns a human readable name for the result code.
func (r Result) String() string {
	switch r {
	case ResultSucceeded:
		return "Succeeded"
	case ResultFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Result(%d)", int32(r))
	}
}

// BufferResult is the status returned by native calls that fill a caller
// provided buffer.
type BufferResult int32

// BufferResult codes, matching the native ABI.
const (
	BufferResultSucceeded BufferResult = 0
	BufferResultFailed    BufferResult = 1
	BufferResultTooSmall  BufferResult = 2
)

// String returns a human readable name for the buffer result code.
func (r BufferResult) String() string {
	switch r {
	case BufferResultSucceeded:
		return "Succeeded"
	case BufferResultFailed:
		return "Failed"
	case BufferResultTooSmall:
		return "TooSmall"
	default:
		return fmt.Sprintf("BufferResult(%d)", int32(r))
	}
}

// WaitResult is the status returned by native calls that wait with a timeout.
type WaitResult int32

// WaitResult codes, matching the native ABI.
const (
	WaitResultSucceeded WaitResult = 0
	WaitResultFailed    WaitResult = 1
	WaitResultTimeout   WaitResult = 2
)

// String returns a human readable name for the wait result code.
func (r WaitResult) String() string {
	switch r {
	case WaitResultSucceeded:
		return "Succeeded"
	case WaitResultFailed:
		return "Failed"
	case WaitResultTimeout:
		return "Timeout"
	default:
		return fmt.Sprintf("WaitResult(%d)", int32(r))
	}
}

// WaitInfinite blocks a capture wait until a frame arrives.
const WaitInfinite int32 = -1

// SDK is the set of native entry points the binding drives. Implementations
// wrap the shared library directly (see libk4a) or simulate it (see fake);
// tests stub individual calls (see inject).
//
// Handles are reference counted by the native layer. Calls that hand a
// handle to the caller (DeviceOpen, DeviceGetCapture, ImageCreate, the
// CaptureGet*Image getters, TransformationCreate) confer one reference;
// accessors borrow and confer none. The capture image getters return the
// null handle when the capture has no image in that slot.
type SDK interface {
	DeviceGetInstalledCount() uint32
	DeviceOpen(index uint32) (DeviceHandle, Result)
	DeviceClose(device DeviceHandle)
	// DeviceGetSerialNum fills buf with the NUL terminated serial number and
	// reports the number of bytes used. A nil or short buf reports the
	// required size with BufferResultTooSmall.
	DeviceGetSerialNum(device DeviceHandle, buf []byte) (int, BufferResult)
	DeviceGetSyncJack(device DeviceHandle) (syncInConnected, syncOutConnected bool, res Result)
	DeviceStartCameras(device DeviceHandle, config *DeviceConfiguration) Result
	DeviceStopCameras(device DeviceHandle)
	DeviceGetCapture(device DeviceHandle, timeoutMS int32) (CaptureHandle, WaitResult)
	DeviceGetCalibration(device DeviceHandle, depthMode DepthMode, resolution ColorResolution) (Calibration, Result)

	CaptureGetDepthImage(capture CaptureHandle) ImageHandle
	CaptureGetColorImage(capture CaptureHandle) ImageHandle
	CaptureGetIRImage(capture CaptureHandle) ImageHandle
	CaptureReference(capture CaptureHandle)
	CaptureRelease(capture CaptureHandle)

	ImageCreate(format ImageFormat, widthPixels, heightPixels, strideBytes int32) (ImageHandle, Result)
	ImageGetWidthPixels(image ImageHandle) int32
	ImageGetHeightPixels(image ImageHandle) int32
	ImageGetStrideBytes(image ImageHandle) int32
	ImageGetSize(image ImageHandle) uint64
	// ImageGetBuffer returns a view over the native pixel buffer. The bytes
	// are valid only while the image holds at least one reference.
	ImageGetBuffer(image ImageHandle) []byte
	ImageGetFormat(image ImageHandle) ImageFormat
	ImageReference(image ImageHandle)
	ImageRelease(image ImageHandle)

	TransformationCreate(calibration *Calibration) TransformationHandle
	TransformationDestroy(transformation TransformationHandle)
}

var (
	registryMu    sync.Mutex
	registeredSDK SDK
)

// RegisterSDK installs the process wide SDK implementation. Importing libk4a
// in a cgo build does this automatically; tests install fakes. Passing nil
// clears the registration.
func RegisterSDK(sdk SDK) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registeredSDK = sdk
}

// DefaultSDK returns the registered SDK implementation, or ErrNoSDK if none
// has been registered.
func DefaultSDK() (SDK, error) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if registeredSDK == nil {
		return nil, ErrNoSDK
	}
	return registeredSDK, nil
}
