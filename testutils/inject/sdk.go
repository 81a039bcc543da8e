// Package inject provides an injectable mock of the k4a SDK surface for
// testing.
package inject

import (
	"go.viam.com/k4a"
)

// SDK is an injected SDK. Calls fall through to the embedded SDK when the
// corresponding Func is nil.
type SDK struct {
	k4a.SDK
	DeviceGetInstalledCountFunc func() uint32
	DeviceOpenFunc              func(index uint32) (k4a.DeviceHandle, k4a.Result)
	DeviceCloseFunc             func(device k4a.DeviceHandle)
	DeviceGetSerialNumFunc      func(device k4a.DeviceHandle, buf []byte) (int, k4a.BufferResult)
	DeviceGetSyncJackFunc       func(device k4a.DeviceHandle) (bool, bool, k4a.Result)
	DeviceStartCamerasFunc      func(device k4a.DeviceHandle, config *k4a.DeviceConfiguration) k4a.Result
	DeviceStopCamerasFunc       func(device k4a.DeviceHandle)
	DeviceGetCaptureFunc        func(device k4a.DeviceHandle, timeoutMS int32) (k4a.CaptureHandle, k4a.WaitResult)
	DeviceGetCalibrationFunc    func(device k4a.DeviceHandle, depthMode k4a.DepthMode, resolution k4a.ColorResolution) (k4a.Calibration, k4a.Result)
	CaptureGetDepthImageFunc    func(capture k4a.CaptureHandle) k4a.ImageHandle
	CaptureGetColorImageFunc    func(capture k4a.CaptureHandle) k4a.ImageHandle
	CaptureGetIRImageFunc       func(capture k4a.CaptureHandle) k4a.ImageHandle
	CaptureReferenceFunc        func(capture k4a.CaptureHandle)
	CaptureReleaseFunc          func(capture k4a.CaptureHandle)
	ImageCreateFunc             func(format k4a.ImageFormat, widthPixels, heightPixels, strideBytes int32) (k4a.ImageHandle, k4a.Result)
	ImageGetWidthPixelsFunc     func(image k4a.ImageHandle) int32
	ImageGetHeightPixelsFunc    func(image k4a.ImageHandle) int32
	ImageGetStrideBytesFunc     func(image k4a.ImageHandle) int32
	ImageGetSizeFunc            func(image k4a.ImageHandle) uint64
	ImageGetBufferFunc          func(image k4a.ImageHandle) []byte
	ImageGetFormatFunc          func(image k4a.ImageHandle) k4a.ImageFormat
	ImageReferenceFunc          func(image k4a.ImageHandle)
	ImageReleaseFunc            func(image k4a.ImageHandle)
	TransformationCreateFunc    func(calibration *k4a.Calibration) k4a.TransformationHandle
	TransformationDestroyFunc   func(transformation k4a.TransformationHandle)
}

// DeviceGetInstalledCount calls the injected DeviceGetInstalledCount or the real version.
func (s *SDK) DeviceGetInstalledCount() uint32 {
	if s.DeviceGetInstalledCountFunc == nil {
		return s.SDK.DeviceGetInstalledCount()
	}
	return s.DeviceGetInstalledCountFunc()
}

// DeviceOpen calls the injected DeviceOpen or the real version.
func (s *SDK) DeviceOpen(index uint32) (k4a.DeviceHandle, k4a.Result) {
	if s.DeviceOpenFunc == nil {
		return s.SDK.DeviceOpen(index)
	}
	return s.DeviceOpenFunc(index)
}

// DeviceClose calls the injected DeviceClose or the real version.
func (s *SDK) DeviceClose(device k4a.DeviceHandle) {
	if s.DeviceCloseFunc == nil {
		s.SDK.DeviceClose(device)
		return
	}
	s.DeviceCloseFunc(device)
}

// DeviceGetSerialNum calls the injected DeviceGetSerialNum or the real version.
func (s *SDK) DeviceGetSerialNum(device k4a.DeviceHandle, buf []byte) (int, k4a.BufferResult) {
	if s.DeviceGetSerialNumFunc == nil {
		return s.SDK.DeviceGetSerialNum(device, buf)
	}
	return s.DeviceGetSerialNumFunc(device, buf)
}

// DeviceGetSyncJack calls the injected DeviceGetSyncJack or the real version.
func (s *SDK) DeviceGetSyncJack(device k4a.DeviceHandle) (bool, bool, k4a.Result) {
	if s.DeviceGetSyncJackFunc == nil {
		return s.SDK.DeviceGetSyncJack(device)
	}
	return s.DeviceGetSyncJackFunc(device)
}

// DeviceStartCameras calls the injected DeviceStartCameras or the real version.
func (s *SDK) DeviceStartCameras(device k4a.DeviceHandle, config *k4a.DeviceConfiguration) k4a.Result {
	if s.DeviceStartCamerasFunc == nil {
		return s.SDK.DeviceStartCameras(device, config)
	}
	return s.DeviceStartCamerasFunc(device, config)
}

// DeviceStopCameras calls the injected DeviceStopCameras or the real version.
func (s *SDK) DeviceStopCameras(device k4a.DeviceHandle) {
	if s.DeviceStopCamerasFunc == nil {
		s.SDK.DeviceStopCameras(device)
		return
	}
	s.DeviceStopCamerasFunc(device)
}

// DeviceGetCapture calls the injected DeviceGetCapture or the real version.
func (s *SDK) DeviceGetCapture(device k4a.DeviceHandle, timeoutMS int32) (k4a.CaptureHandle, k4a.WaitResult) {
	if s.DeviceGetCaptureFunc == nil {
		return s.SDK.DeviceGetCapture(device, timeoutMS)
	}
	return s.DeviceGetCaptureFunc(device, timeoutMS)
}

// DeviceGetCalibration calls the injected DeviceGetCalibration or the real version.
func (s *SDK) DeviceGetCalibration(
	device k4a.DeviceHandle,
	depthMode k4a.DepthMode,
	resolution k4a.ColorResolution,
) (k4a.Calibration, k4a.Result) {
	if s.DeviceGetCalibrationFunc == nil {
		return s.SDK.DeviceGetCalibration(device, depthMode, resolution)
	}
	return s.DeviceGetCalibrationFunc(device, depthMode, resolution)
}

// CaptureGetDepthImage calls the injected CaptureGetDepthImage or the real version.
func (s *SDK) CaptureGetDepthImage(capture k4a.CaptureHandle) k4a.ImageHandle {
	if s.CaptureGetDepthImageFunc == nil {
		return s.SDK.CaptureGetDepthImage(capture)
	}
	return s.CaptureGetDepthImageFunc(capture)
}

// CaptureGetColorImage calls the injected CaptureGetColorImage or the real version.
func (s *SDK) CaptureGetColorImage(capture k4a.CaptureHandle) k4a.ImageHandle {
	if s.CaptureGetColorImageFunc == nil {
		return s.SDK.CaptureGetColorImage(capture)
	}
	return s.CaptureGetColorImageFunc(capture)
}

// CaptureGetIRImage calls the injected CaptureGetIRImage or the real version.
func (s *SDK) CaptureGetIRImage(capture k4a.CaptureHandle) k4a.ImageHandle {
	if s.CaptureGetIRImageFunc == nil {
		return s.SDK.CaptureGetIRImage(capture)
	}
	return s.CaptureGetIRImageFunc(capture)
}

// CaptureReference calls the injected CaptureReference or the real version.
func (s *SDK) CaptureReference(capture k4a.CaptureHandle) {
	if s.CaptureReferenceFunc == nil {
		s.SDK.CaptureReference(capture)
		return
	}
	s.CaptureReferenceFunc(capture)
}

// CaptureRelease calls the injected CaptureRelease or the real version.
func (s *SDK) CaptureRelease(capture k4a.CaptureHandle) {
	if s.CaptureReleaseFunc == nil {
		s.SDK.CaptureRelease(capture)
		return
	}
	s.CaptureReleaseFunc(capture)
}

// ImageCreate calls the injected ImageCreate or the real version.
func (s *SDK) ImageCreate(format k4a.ImageFormat, widthPixels, heightPixels, strideBytes int32) (k4a.ImageHandle, k4a.Result) {
	if s.ImageCreateFunc == nil {
		return s.SDK.ImageCreate(format, widthPixels, heightPixels, strideBytes)
	}
	return s.ImageCreateFunc(format, widthPixels, heightPixels, strideBytes)
}

// ImageGetWidthPixels calls the injected ImageGetWidthPixels or the real version.
func (s *SDK) ImageGetWidthPixels(image k4a.ImageHandle) int32 {
	if s.ImageGetWidthPixelsFunc == nil {
		return s.SDK.ImageGetWidthPixels(image)
	}
	return s.ImageGetWidthPixelsFunc(image)
}

// ImageGetHeightPixels calls the injected ImageGetHeightPixels or the real version.
func (s *SDK) ImageGetHeightPixels(image k4a.ImageHandle) int32 {
	if s.ImageGetHeightPixelsFunc == nil {
		return s.SDK.ImageGetHeightPixels(image)
	}
	return s.ImageGetHeightPixelsFunc(image)
}

// ImageGetStrideBytes calls the injected ImageGetStrideBytes or the real version.
func (s *SDK) ImageGetStrideBytes(image k4a.ImageHandle) int32 {
	if s.ImageGetStrideBytesFunc == nil {
		return s.SDK.ImageGetStrideBytes(image)
	}
	return s.ImageGetStrideBytesFunc(image)
}

// ImageGetSize calls the injected ImageGetSize or the real version.
func (s *SDK) ImageGetSize(image k4a.ImageHandle) uint64 {
	if s.ImageGetSizeFunc == nil {
		return s.SDK.ImageGetSize(image)
	}
	return s.ImageGetSizeFunc(image)
}

// ImageGetBuffer calls the injected ImageGetBuffer or the real version.
func (s *SDK) ImageGetBuffer(image k4a.ImageHandle) []byte {
	if s.ImageGetBufferFunc == nil {
		return s.SDK.ImageGetBuffer(image)
	}
	return s.ImageGetBufferFunc(image)
}

// ImageGetFormat calls the injected ImageGetFormat or the real version.
func (s *SDK) ImageGetFormat(image k4a.ImageHandle) k4a.ImageFormat {
	if s.ImageGetFormatFunc == nil {
		return s.SDK.ImageGetFormat(image)
	}
	return s.ImageGetFormatFunc(image)
}

// ImageReference calls the injected ImageReference or the real version.
func (s *SDK) ImageReference(image k4a.ImageHandle) {
	if s.ImageReferenceFunc == nil {
		s.SDK.ImageReference(image)
		return
	}
	s.ImageReferenceFunc(image)
}

// ImageRelease calls the injected ImageRelease or the real version.
func (s *SDK) ImageRelease(image k4a.ImageHandle) {
	if s.ImageReleaseFunc == nil {
		s.SDK.ImageRelease(image)
		return
	}
	s.ImageReleaseFunc(image)
}

// TransformationCreate calls the injected TransformationCreate or the real version.
func (s *SDK) TransformationCreate(calibration *k4a.Calibration) k4a.TransformationHandle {
	if s.TransformationCreateFunc == nil {
		return s.SDK.TransformationCreate(calibration)
	}
	return s.TransformationCreateFunc(calibration)
}

// TransformationDestroy calls the injected TransformationDestroy or the real version.
func (s *SDK) TransformationDestroy(transformation k4a.TransformationHandle) {
	if s.TransformationDestroyFunc == nil {
		s.SDK.TransformationDestroy(transformation)
		return
	}
	s.TransformationDestroyFunc(transformation)
}
