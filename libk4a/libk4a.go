//go:build k4a

package libk4a

// #include <k4a/k4a.h>
// #cgo LDFLAGS: -lk4a
import "C"

import (
	"unsafe"

	"go.viam.com/k4a"
)

func init() {
	k4a.RegisterSDK(nativeSDK{})
}

// nativeSDK implements k4a.SDK by direct passthrough to the shared library.
// It holds no state of its own; all resources live behind native handles.
type nativeSDK struct{}

func deviceHandle(h k4a.DeviceHandle) C.k4a_device_t {
	return C.k4a_device_t(unsafe.Pointer(uintptr(h)))
}

func captureHandle(h k4a.CaptureHandle) C.k4a_capture_t {
	return C.k4a_capture_t(unsafe.Pointer(uintptr(h)))
}

func imageHandle(h k4a.ImageHandle) C.k4a_image_t {
	return C.k4a_image_t(unsafe.Pointer(uintptr(h)))
}

func (nativeSDK) DeviceGetInstalledCount() uint32 {
	return uint32(C.k4a_device_get_installed_count())
}

func (nativeSDK) DeviceOpen(index uint32) (k4a.DeviceHandle, k4a.Result) {
	var handle C.k4a_device_t
	res := C.k4a_device_open(C.uint32_t(index), &handle)
	if res != C.K4A_RESULT_SUCCEEDED {
		return 0, k4a.Result(res)
	}
	return k4a.DeviceHandle(uintptr(unsafe.Pointer(handle))), k4a.ResultSucceeded
}

func (nativeSDK) DeviceClose(device k4a.DeviceHandle) {
	C.k4a_device_close(deviceHandle(device))
}

func (nativeSDK) DeviceGetSerialNum(device k4a.DeviceHandle, buf []byte) (int, k4a.BufferResult) {
	size := C.size_t(len(buf))
	var p *C.char
	if len(buf) > 0 {
		p = (*C.char)(unsafe.Pointer(&buf[0]))
	}
	res := C.k4a_device_get_serialnum(deviceHandle(device), p, &size)
	return int(size), k4a.BufferResult(res)
}

func (nativeSDK) DeviceGetSyncJack(device k4a.DeviceHandle) (syncInConnected, syncOutConnected bool, res k4a.Result) {
	var in, out C.bool
	result := C.k4a_device_get_sync_jack(deviceHandle(device), &in, &out)
	return bool(in), bool(out), k4a.Result(result)
}

func (nativeSDK) DeviceStartCameras(device k4a.DeviceHandle, config *k4a.DeviceConfiguration) k4a.Result {
	var raw C.k4a_device_configuration_t
	raw.color_format = C.k4a_image_format_t(config.ColorFormat)
	raw.color_resolution = C.k4a_color_resolution_t(config.ColorResolution)
	raw.depth_mode = C.k4a_depth_mode_t(config.DepthMode)
	raw.camera_fps = C.k4a_fps_t(config.CameraFPS)
	raw.synchronized_images_only = C.bool(config.SynchronizedImagesOnly)
	raw.depth_delay_off_color_usec = C.int32_t(config.DepthDelayOffColorUsec)
	raw.wired_sync_mode = C.k4a_wired_sync_mode_t(config.WiredSyncMode)
	raw.subordinate_delay_off_master_usec = C.uint32_t(config.SubordinateDelayOffMasterUsec)
	raw.disable_streaming_indicator = C.bool(config.DisableStreamingIndicator)
	return k4a.Result(C.k4a_device_start_cameras(deviceHandle(device), &raw))
}

func (nativeSDK) DeviceStopCameras(device k4a.DeviceHandle) {
	C.k4a_device_stop_cameras(deviceHandle(device))
}

func (nativeSDK) DeviceGetCapture(device k4a.DeviceHandle, timeoutMS int32) (k4a.CaptureHandle, k4a.WaitResult) {
	var handle C.k4a_capture_t
	res := C.k4a_device_get_capture(deviceHandle(device), &handle, C.int32_t(timeoutMS))
	if res != C.K4A_WAIT_RESULT_SUCCEEDED {
		return 0, k4a.WaitResult(res)
	}
	return k4a.CaptureHandle(uintptr(unsafe.Pointer(handle))), k4a.WaitResultSucceeded
}

func (nativeSDK) DeviceGetCalibration(
	device k4a.DeviceHandle,
	depthMode k4a.DepthMode,
	resolution k4a.ColorResolution,
) (k4a.Calibration, k4a.Result) {
	var raw C.k4a_calibration_t
	res := C.k4a_device_get_calibration(
		deviceHandle(device),
		C.k4a_depth_mode_t(depthMode),
		C.k4a_color_resolution_t(resolution),
		&raw,
	)
	if res != C.K4A_RESULT_SUCCEEDED {
		return k4a.Calibration{}, k4a.Result(res)
	}
	out := k4a.Calibration{
		DepthCameraCalibration: transcribeCamera(&raw.depth_camera_calibration),
		ColorCameraCalibration: transcribeCamera(&raw.color_camera_calibration),
		DepthMode:              k4a.DepthMode(raw.depth_mode),
		ColorResolution:        k4a.ColorResolution(raw.color_resolution),
	}
	for from := 0; from < k4a.CalibrationTypeCount; from++ {
		for to := 0; to < k4a.CalibrationTypeCount; to++ {
			out.Extrinsics[from][to] = transcribeExtrinsics(&raw.extrinsics[from][to])
		}
	}
	return out, k4a.ResultSucceeded
}

func (nativeSDK) CaptureGetDepthImage(capture k4a.CaptureHandle) k4a.ImageHandle {
	return k4a.ImageHandle(uintptr(unsafe.Pointer(C.k4a_capture_get_depth_image(captureHandle(capture)))))
}

func (nativeSDK) CaptureGetColorImage(capture k4a.CaptureHandle) k4a.ImageHandle {
	return k4a.ImageHandle(uintptr(unsafe.Pointer(C.k4a_capture_get_color_image(captureHandle(capture)))))
}

func (nativeSDK) CaptureGetIRImage(capture k4a.CaptureHandle) k4a.ImageHandle {
	return k4a.ImageHandle(uintptr(unsafe.Pointer(C.k4a_capture_get_ir_image(captureHandle(capture)))))
}

func (nativeSDK) CaptureReference(capture k4a.CaptureHandle) {
	C.k4a_capture_reference(captureHandle(capture))
}

func (nativeSDK) CaptureRelease(capture k4a.CaptureHandle) {
	C.k4a_capture_release(captureHandle(capture))
}

func (nativeSDK) ImageCreate(format k4a.ImageFormat, widthPixels, heightPixels, strideBytes int32) (k4a.ImageHandle, k4a.Result) {
	var handle C.k4a_image_t
	res := C.k4a_image_create(
		C.k4a_image_format_t(format),
		C.int(widthPixels),
		C.int(heightPixels),
		C.int(strideBytes),
		&handle,
	)
	if res != C.K4A_RESULT_SUCCEEDED {
		return 0, k4a.Result(res)
	}
	return k4a.ImageHandle(uintptr(unsafe.Pointer(handle))), k4a.ResultSucceeded
}

func (nativeSDK) ImageGetWidthPixels(image k4a.ImageHandle) int32 {
	return int32(C.k4a_image_get_width_pixels(imageHandle(image)))
}

func (nativeSDK) ImageGetHeightPixels(image k4a.ImageHandle) int32 {
	return int32(C.k4a_image_get_height_pixels(imageHandle(image)))
}

func (nativeSDK) ImageGetStrideBytes(image k4a.ImageHandle) int32 {
	return int32(C.k4a_image_get_stride_bytes(imageHandle(image)))
}

func (nativeSDK) ImageGetSize(image k4a.ImageHandle) uint64 {
	return uint64(C.k4a_image_get_size(imageHandle(image)))
}

// ImageGetBuffer views the native pixel memory in place. The slice stays
// valid only while the image holds at least one reference.
func (nativeSDK) ImageGetBuffer(image k4a.ImageHandle) []byte {
	p := C.k4a_image_get_buffer(imageHandle(image))
	if p == nil {
		return nil
	}
	size := C.k4a_image_get_size(imageHandle(image))
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), int(size))
}

func (nativeSDK) ImageGetFormat(image k4a.ImageHandle) k4a.ImageFormat {
	return k4a.ImageFormatFromCode(int32(C.k4a_image_get_format(imageHandle(image))))
}

func (nativeSDK) ImageReference(image k4a.ImageHandle) {
	C.k4a_image_reference(imageHandle(image))
}

func (nativeSDK) ImageRelease(image k4a.ImageHandle) {
	C.k4a_image_release(imageHandle(image))
}

func (nativeSDK) TransformationCreate(calibration *k4a.Calibration) k4a.TransformationHandle {
	raw := nativeCalibration(calibration)
	handle := C.k4a_transformation_create(&raw)
	return k4a.TransformationHandle(uintptr(unsafe.Pointer(handle)))
}

func (nativeSDK) TransformationDestroy(transformation k4a.TransformationHandle) {
	C.k4a_transformation_destroy(C.k4a_transformation_t(unsafe.Pointer(uintptr(transformation))))
}

// The intrinsic parameter block is a union in the native headers. Both
// transcription directions read it as the flat float array member, whose
// order matches k4a.IntrinsicParameters field for field (p2 before p1).

func transcribeCamera(c *C.k4a_calibration_camera_t) k4a.CameraCalibration {
	v := (*[15]float32)(unsafe.Pointer(&c.intrinsics.parameters))
	return k4a.CameraCalibration{
		Extrinsics: transcribeExtrinsics(&c.extrinsics),
		Intrinsics: k4a.Intrinsics{
			Type:           k4a.CalibrationModelType(c.intrinsics._type),
			ParameterCount: uint32(c.intrinsics.parameter_count),
			Parameters: k4a.IntrinsicParameters{
				Cx: v[0], Cy: v[1],
				Fx: v[2], Fy: v[3],
				K1: v[4], K2: v[5], K3: v[6], K4: v[7], K5: v[8], K6: v[9],
				Codx: v[10], Cody: v[11],
				P2: v[12], P1: v[13],
				MetricRadius: v[14],
			},
		},
		ResolutionWidth:  int32(c.resolution_width),
		ResolutionHeight: int32(c.resolution_height),
		MetricRadius:     float32(c.metric_radius),
	}
}

func transcribeExtrinsics(e *C.k4a_calibration_extrinsics_t) k4a.Extrinsics {
	var out k4a.Extrinsics
	for i := range out.Rotation {
		out.Rotation[i] = float32(e.rotation[i])
	}
	for i := range out.Translation {
		out.Translation[i] = float32(e.translation[i])
	}
	return out
}

func nativeCalibration(c *k4a.Calibration) C.k4a_calibration_t {
	var raw C.k4a_calibration_t
	raw.depth_camera_calibration = nativeCamera(&c.DepthCameraCalibration)
	raw.color_camera_calibration = nativeCamera(&c.ColorCameraCalibration)
	for from := 0; from < k4a.CalibrationTypeCount; from++ {
		for to := 0; to < k4a.CalibrationTypeCount; to++ {
			raw.extrinsics[from][to] = nativeExtrinsics(&c.Extrinsics[from][to])
		}
	}
	raw.depth_mode = C.k4a_depth_mode_t(c.DepthMode)
	raw.color_resolution = C.k4a_color_resolution_t(c.ColorResolution)
	return raw
}

func nativeCamera(cc *k4a.CameraCalibration) C.k4a_calibration_camera_t {
	var raw C.k4a_calibration_camera_t
	raw.extrinsics = nativeExtrinsics(&cc.Extrinsics)
	raw.intrinsics._type = C.k4a_calibration_model_type_t(cc.Intrinsics.Type)
	raw.intrinsics.parameter_count = C.uint(cc.Intrinsics.ParameterCount)
	v := (*[15]float32)(unsafe.Pointer(&raw.intrinsics.parameters))
	p := &cc.Intrinsics.Parameters
	v[0], v[1] = p.Cx, p.Cy
	v[2], v[3] = p.Fx, p.Fy
	v[4], v[5], v[6], v[7], v[8], v[9] = p.K1, p.K2, p.K3, p.K4, p.K5, p.K6
	v[10], v[11] = p.Codx, p.Cody
	v[12], v[13] = p.P2, p.P1
	v[14] = p.MetricRadius
	raw.resolution_width = C.int(cc.ResolutionWidth)
	raw.resolution_height = C.int(cc.ResolutionHeight)
	raw.metric_radius = C.float(cc.MetricRadius)
	return raw
}

func nativeExtrinsics(e *k4a.Extrinsics) C.k4a_calibration_extrinsics_t {
	var raw C.k4a_calibration_extrinsics_t
	for i, r := range e.Rotation {
		raw.rotation[i] = C.float(r)
	}
	for i, tr := range e.Translation {
		raw.translation[i] = C.float(tr)
	}
	return raw
}
