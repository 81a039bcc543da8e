package k4a_test

import (
	"errors"
	"testing"

	"go.viam.com/test"

	"go.viam.com/k4a"
	"go.viam.com/k4a/testutils/inject"
)

func TestInstalledCount(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceGetInstalledCountFunc = func() uint32 {
		return 3
	}
	k4a.RegisterSDK(sdk)
	defer k4a.RegisterSDK(nil)

	count, err := k4a.InstalledCount()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, count, test.ShouldEqual, 3)
}

func TestInstalledCountNoSDK(t *testing.T) {
	k4a.RegisterSDK(nil)
	_, err := k4a.InstalledCount()
	test.That(t, errors.Is(err, k4a.ErrNoSDK), test.ShouldBeTrue)
}

func TestOpen(t *testing.T) {
	sdk := &inject.SDK{}
	var openedIndex uint32
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		openedIndex = index
		return 42, k4a.ResultSucceeded
	}
	k4a.RegisterSDK(sdk)
	defer k4a.RegisterSDK(nil)

	dev, err := k4a.Open(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, openedIndex, test.ShouldEqual, 1)
	test.That(t, dev.Handle(), test.ShouldEqual, k4a.DeviceHandle(42))
}

func TestOpenNoSDK(t *testing.T) {
	k4a.RegisterSDK(nil)
	_, err := k4a.Open(0)
	test.That(t, errors.Is(err, k4a.ErrNoSDK), test.ShouldBeTrue)
}

func TestOpenFailed(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 0, k4a.ResultFailed
	}

	_, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldNotBeNil)
	var openErr *k4a.DeviceOpenError
	test.That(t, errors.As(err, &openErr), test.ShouldBeTrue)
	test.That(t, openErr.Code, test.ShouldEqual, k4a.ResultFailed)
}

func TestSerialNumber(t *testing.T) {
	serial := append([]byte("000123492412"), 0)
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	sdk.DeviceGetSerialNumFunc = func(device k4a.DeviceHandle, buf []byte) (int, k4a.BufferResult) {
		if len(buf) < len(serial) {
			return len(serial), k4a.BufferResultTooSmall
		}
		copy(buf, serial)
		return len(serial), k4a.BufferResultSucceeded
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	got, err := dev.SerialNumber()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldEqual, "000123492412")
}

func TestSerialNumberSizeQueryAnomaly(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	sdk.DeviceGetSerialNumFunc = func(device k4a.DeviceHandle, buf []byte) (int, k4a.BufferResult) {
		return 0, k4a.BufferResultFailed
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	_, err = dev.SerialNumber()
	var serialErr *k4a.SerialNumberError
	test.That(t, errors.As(err, &serialErr), test.ShouldBeTrue)
	test.That(t, serialErr.Code, test.ShouldEqual, k4a.BufferResultFailed)
}

func TestSerialNumberFillFailed(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	sdk.DeviceGetSerialNumFunc = func(device k4a.DeviceHandle, buf []byte) (int, k4a.BufferResult) {
		if buf == nil {
			return 13, k4a.BufferResultTooSmall
		}
		return 0, k4a.BufferResultFailed
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	_, err = dev.SerialNumber()
	var serialErr *k4a.SerialNumberError
	test.That(t, errors.As(err, &serialErr), test.ShouldBeTrue)
	test.That(t, serialErr.Code, test.ShouldEqual, k4a.BufferResultFailed)
}

func TestSerialNumberBadEncoding(t *testing.T) {
	serial := []byte{0xff, 0xfe, 0xfd, 0}
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	sdk.DeviceGetSerialNumFunc = func(device k4a.DeviceHandle, buf []byte) (int, k4a.BufferResult) {
		if len(buf) < len(serial) {
			return len(serial), k4a.BufferResultTooSmall
		}
		copy(buf, serial)
		return len(serial), k4a.BufferResultSucceeded
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	_, err = dev.SerialNumber()
	test.That(t, errors.Is(err, k4a.ErrSerialNumberEncoding), test.ShouldBeTrue)
}

func TestSyncJackStatus(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	sdk.DeviceGetSyncJackFunc = func(device k4a.DeviceHandle) (bool, bool, k4a.Result) {
		return true, false, k4a.ResultSucceeded
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	status, err := dev.SyncJackStatus()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, status.SyncInConnected, test.ShouldBeTrue)
	test.That(t, status.SyncOutConnected, test.ShouldBeFalse)

	sdk.DeviceGetSyncJackFunc = func(device k4a.DeviceHandle) (bool, bool, k4a.Result) {
		return false, false, k4a.ResultFailed
	}
	_, err = dev.SyncJackStatus()
	var jackErr *k4a.SyncJackError
	test.That(t, errors.As(err, &jackErr), test.ShouldBeTrue)
	test.That(t, jackErr.Code, test.ShouldEqual, k4a.ResultFailed)
}

func TestStartCameras(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	var started *k4a.DeviceConfiguration
	sdk.DeviceStartCamerasFunc = func(device k4a.DeviceHandle, config *k4a.DeviceConfiguration) k4a.Result {
		cfg := *config
		started = &cfg
		return k4a.ResultSucceeded
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dev.StartCameras(k4a.DefaultConfiguration()), test.ShouldBeNil)
	test.That(t, *started, test.ShouldResemble, k4a.DeviceConfiguration{
		ColorFormat:     k4a.FormatColorMJPEG,
		ColorResolution: k4a.ColorResolution720p,
		DepthMode:       k4a.DepthModeWFOV2x2Binned,
	})
}

func TestStartCamerasDefault(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	var started *k4a.DeviceConfiguration
	sdk.DeviceStartCamerasFunc = func(device k4a.DeviceHandle, config *k4a.DeviceConfiguration) k4a.Result {
		cfg := *config
		started = &cfg
		return k4a.ResultSucceeded
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dev.StartCamerasDefault(), test.ShouldBeNil)
	test.That(t, *started, test.ShouldResemble, k4a.DeviceConfiguration{
		ColorFormat:     k4a.FormatColorBGRA32,
		ColorResolution: k4a.ColorResolution2160p,
		DepthMode:       k4a.DepthModeNFOVUnbinned,
		CameraFPS:       k4a.FPS30,
	})
}

func TestStartCamerasFailed(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	sdk.DeviceStartCamerasFunc = func(device k4a.DeviceHandle, config *k4a.DeviceConfiguration) k4a.Result {
		return k4a.ResultFailed
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	err = dev.StartCameras(k4a.DisableAllConfiguration())
	var startErr *k4a.StartCamerasError
	test.That(t, errors.As(err, &startErr), test.ShouldBeTrue)
	test.That(t, startErr.Code, test.ShouldEqual, k4a.ResultFailed)
}

func TestStopCameras(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	var stopped int
	sdk.DeviceStopCamerasFunc = func(device k4a.DeviceHandle) {
		stopped++
	}
	sdk.DeviceCloseFunc = func(device k4a.DeviceHandle) {}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	dev.StopCameras()
	test.That(t, stopped, test.ShouldEqual, 1)

	// stopping a closed device is a no-op
	dev.Close()
	dev.StopCameras()
	test.That(t, stopped, test.ShouldEqual, 1)
}

func TestGetCapture(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	var gotTimeout int32
	sdk.DeviceGetCaptureFunc = func(device k4a.DeviceHandle, timeoutMS int32) (k4a.CaptureHandle, k4a.WaitResult) {
		gotTimeout = timeoutMS
		return 7, k4a.WaitResultSucceeded
	}
	var released int
	sdk.CaptureReleaseFunc = func(capture k4a.CaptureHandle) {
		released++
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	capture, err := dev.GetCapture(1000)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, gotTimeout, test.ShouldEqual, 1000)
	test.That(t, capture.Handle(), test.ShouldEqual, k4a.CaptureHandle(7))
	capture.Close()
	test.That(t, released, test.ShouldEqual, 1)
}

func TestGetCaptureTimeout(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	sdk.DeviceGetCaptureFunc = func(device k4a.DeviceHandle, timeoutMS int32) (k4a.CaptureHandle, k4a.WaitResult) {
		return 0, k4a.WaitResultTimeout
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)

	// a zero timeout polls; an idle device reports a timeout
	_, err = dev.GetCapture(0)
	test.That(t, errors.Is(err, k4a.ErrCaptureTimeout), test.ShouldBeTrue)
}

func TestGetCaptureFailed(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	sdk.DeviceGetCaptureFunc = func(device k4a.DeviceHandle, timeoutMS int32) (k4a.CaptureHandle, k4a.WaitResult) {
		return 0, k4a.WaitResultFailed
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	_, err = dev.GetCapture(k4a.WaitInfinite)
	test.That(t, errors.Is(err, k4a.ErrCaptureFailed), test.ShouldBeTrue)
}

func TestGetCaptureUnexpectedResult(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	sdk.DeviceGetCaptureFunc = func(device k4a.DeviceHandle, timeoutMS int32) (k4a.CaptureHandle, k4a.WaitResult) {
		return 0, k4a.WaitResult(99)
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	_, err = dev.GetCapture(0)
	var waitErr *k4a.CaptureWaitError
	test.That(t, errors.As(err, &waitErr), test.ShouldBeTrue)
	test.That(t, waitErr.Code, test.ShouldEqual, k4a.WaitResult(99))
}

func TestDeviceCalibration(t *testing.T) {
	fixture := k4a.Calibration{
		DepthMode:       k4a.DepthModeNFOVUnbinned,
		ColorResolution: k4a.ColorResolution720p,
	}
	fixture.DepthCameraCalibration.ResolutionWidth = 640
	fixture.DepthCameraCalibration.ResolutionHeight = 576

	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	sdk.DeviceGetCalibrationFunc = func(
		device k4a.DeviceHandle,
		depthMode k4a.DepthMode,
		resolution k4a.ColorResolution,
	) (k4a.Calibration, k4a.Result) {
		test.That(t, depthMode, test.ShouldEqual, k4a.DepthModeNFOVUnbinned)
		test.That(t, resolution, test.ShouldEqual, k4a.ColorResolution720p)
		return fixture, k4a.ResultSucceeded
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	cal, err := dev.Calibration(k4a.DepthModeNFOVUnbinned, k4a.ColorResolution720p)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cal, test.ShouldResemble, fixture)
	test.That(t, cal.DepthResolutionWidth(), test.ShouldEqual, 640)
	test.That(t, cal.DepthResolutionHeight(), test.ShouldEqual, 576)
}

func TestDeviceCalibrationFailed(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	sdk.DeviceGetCalibrationFunc = func(
		device k4a.DeviceHandle,
		depthMode k4a.DepthMode,
		resolution k4a.ColorResolution,
	) (k4a.Calibration, k4a.Result) {
		return k4a.Calibration{}, k4a.ResultFailed
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	_, err = dev.Calibration(k4a.DepthModeOff, k4a.ColorResolutionOff)
	test.That(t, errors.Is(err, k4a.ErrCalibrationFailed), test.ShouldBeTrue)

	sdk.DeviceGetCalibrationFunc = func(
		device k4a.DeviceHandle,
		depthMode k4a.DepthMode,
		resolution k4a.ColorResolution,
	) (k4a.Calibration, k4a.Result) {
		return k4a.Calibration{}, k4a.Result(55)
	}
	_, err = dev.Calibration(k4a.DepthModeOff, k4a.ColorResolutionOff)
	var calErr *k4a.CalibrationError
	test.That(t, errors.As(err, &calErr), test.ShouldBeTrue)
	test.That(t, calErr.Code, test.ShouldEqual, k4a.Result(55))
}

func TestDeviceClose(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	var closed int
	sdk.DeviceCloseFunc = func(device k4a.DeviceHandle) {
		test.That(t, device, test.ShouldEqual, k4a.DeviceHandle(42))
		closed++
	}

	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	dev.Close()
	dev.Close()
	test.That(t, closed, test.ShouldEqual, 1)
	test.That(t, dev.Handle(), test.ShouldEqual, k4a.DeviceHandle(0))

	_, err = dev.SerialNumber()
	test.That(t, errors.Is(err, k4a.ErrClosed), test.ShouldBeTrue)
	_, err = dev.GetCapture(0)
	test.That(t, errors.Is(err, k4a.ErrClosed), test.ShouldBeTrue)
	err = dev.StartCameras(k4a.DefaultConfiguration())
	test.That(t, errors.Is(err, k4a.ErrClosed), test.ShouldBeTrue)
}
