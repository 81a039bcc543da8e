package k4a

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNoSDK is returned when no SDK implementation has been registered.
	ErrNoSDK = errors.New("no k4a SDK registered (import libk4a or register a fake)")

	// ErrClosed is returned when calling into a wrapper whose handle has
	// already been closed.
	ErrClosed = errors.New("handle already closed")

	// ErrCaptureTimeout is returned by GetCapture when no capture arrived
	// within the timeout. It is the expected outcome of polling an idle
	// device.
	ErrCaptureTimeout = errors.New("capture wait timed out")

	// ErrCaptureFailed is returned by GetCapture when the native wait fails,
	// for example because streaming stopped.
	ErrCaptureFailed = errors.New("capture wait failed")

	// ErrCalibrationFailed is returned by Calibration when the native read
	// fails.
	ErrCalibrationFailed = errors.New("calibration read failed")

	// ErrSerialNumberEncoding is returned when a device reports a serial
	// number that is not valid UTF-8.
	ErrSerialNumberEncoding = errors.New("serial number is not valid UTF-8")

	// ErrTransformationCreate is returned when the native layer cannot build
	// a transformation engine from a calibration.
	ErrTransformationCreate = errors.New("failed to create transformation")
)

// DeviceOpenError is returned when the native layer cannot open a device.
type DeviceOpenError struct {
	Code Result
}

func (err *DeviceOpenError) Error() string {
	return fmt.Sprintf("failed to open device: %s", err.Code)
}

// StartCamerasError is returned when the native layer rejects a streaming
// configuration.
type StartCamerasError struct {
	Code Result
}

func (err *StartCamerasError) Error() string {
	return fmt.Sprintf("failed to start cameras: %s", err.Code)
}

// SerialNumberError is returned when reading a serial number fails at either
// phase of the size negotiation.
type SerialNumberError struct {
	Code BufferResult
}

func (err *SerialNumberError) Error() string {
	return fmt.Sprintf("failed to read serial number: %s", err.Code)
}

// SyncJackError is returned when reading the synchronization jack status
// fails.
type SyncJackError struct {
	Code Result
}

func (err *SyncJackError) Error() string {
	return fmt.Sprintf("failed to read sync jack status: %s", err.Code)
}

// CaptureWaitError is returned when a capture wait reports a code outside
// the native contract.
type CaptureWaitError struct {
	Code WaitResult
}

func (err *CaptureWaitError) Error() string {
	return fmt.Sprintf("unexpected capture wait result: %s", err.Code)
}

// CalibrationError is returned when a calibration read reports a code
// outside the native contract.
type CalibrationError struct {
	Code Result
}

func (err *CalibrationError) Error() string {
	return fmt.Sprintf("unexpected calibration result: %s", err.Code)
}

// CreateImageError is returned when the native layer cannot allocate an
// image.
type CreateImageError struct {
	Code Result
}

func (err *CreateImageError) Error() string {
	return fmt.Sprintf("failed to create image: %s", err.Code)
}
