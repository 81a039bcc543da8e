// Package calib converts factory calibration blocks into forms usable by
// image geometry pipelines: pinhole intrinsics for projecting between
// pixels and 3D points, the rational lens distortion model, and rigid
// transforms between the sensor frames.
package calib

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/k4a"
)

// PinholeCameraIntrinsics holds the parameters for a perspective projection
// between the 2D image plane and 3D space. Distances are in the same unit
// as the depth readings, millimeters.
type PinholeCameraIntrinsics struct {
	Width  int
	Height int
	Fx     float64
	Fy     float64
	Ppx    float64
	Ppy    float64
}

// CameraCalibrationFor selects the camera block for a sensor frame. Only
// the depth and color frames carry camera intrinsics.
func CameraCalibrationFor(cal k4a.Calibration, camera k4a.CalibrationType) (k4a.CameraCalibration, error) {
	switch camera {
	case k4a.CalibrationTypeDepth:
		return cal.DepthCameraCalibration, nil
	case k4a.CalibrationTypeColor:
		return cal.ColorCameraCalibration, nil
	default:
		return k4a.CameraCalibration{}, errors.Errorf("frame %s has no camera intrinsics", camera)
	}
}

// NewPinholeCameraIntrinsics extracts the pinhole parameters from a camera
// block, checking that the reported lens model is one this package can
// interpret.
func NewPinholeCameraIntrinsics(camera k4a.CameraCalibration) (*PinholeCameraIntrinsics, error) {
	if err := checkModel(camera.Intrinsics); err != nil {
		return nil, err
	}
	p := camera.Intrinsics.Parameters
	intrinsics := &PinholeCameraIntrinsics{
		Width:  int(camera.ResolutionWidth),
		Height: int(camera.ResolutionHeight),
		Fx:     float64(p.Fx),
		Fy:     float64(p.Fy),
		Ppx:    float64(p.Cx),
		Ppy:    float64(p.Cy),
	}
	if err := intrinsics.CheckValid(); err != nil {
		return nil, err
	}
	return intrinsics, nil
}

func checkModel(intrinsics k4a.Intrinsics) error {
	switch intrinsics.Type {
	case k4a.CalibrationModelRational6KT, k4a.CalibrationModelBrownConrady:
	default:
		return errors.Errorf("unsupported lens model %s", intrinsics.Type)
	}
	if intrinsics.ParameterCount != 14 && intrinsics.ParameterCount != 15 {
		return errors.Errorf("unexpected parameter count %d for lens model %s",
			intrinsics.ParameterCount, intrinsics.Type)
	}
	return nil
}

// CheckValid reports every problem with the parameters at once.
func (params *PinholeCameraIntrinsics) CheckValid() error {
	if params == nil {
		return errors.New("intrinsics do not exist")
	}
	var result error
	if params.Width <= 0 || params.Height <= 0 {
		result = multierr.Append(result, errors.Errorf("invalid size (%d, %d)", params.Width, params.Height))
	}
	if params.Fx <= 0 {
		result = multierr.Append(result, errors.Errorf("invalid focal length fx = %v", params.Fx))
	}
	if params.Fy <= 0 {
		result = multierr.Append(result, errors.Errorf("invalid focal length fy = %v", params.Fy))
	}
	if params.Ppx < 0 {
		result = multierr.Append(result, errors.Errorf("invalid principal point ppx = %v", params.Ppx))
	}
	if params.Ppy < 0 {
		result = multierr.Append(result, errors.Errorf("invalid principal point ppy = %v", params.Ppy))
	}
	return result
}

// PixelToPoint transforms a pixel with a depth reading into a 3D point. The
// intrinsics must belong to the sensor that produced the pixel.
func (params *PinholeCameraIntrinsics) PixelToPoint(x, y, z float64) (float64, float64, float64) {
	xOverZ := (x - params.Ppx) / params.Fx
	yOverZ := (y - params.Ppy) / params.Fy
	return xOverZ * z, yOverZ * z, z
}

// PointToPixel projects a 3D point onto the image plane. A point at zero
// depth projects to (-1, -1) so bounds filtering drops it.
func (params *PinholeCameraIntrinsics) PointToPixel(x, y, z float64) (float64, float64) {
	if z != 0. {
		xPx := math.Round((x/z)*params.Fx + params.Ppx)
		yPx := math.Round((y/z)*params.Fy + params.Ppy)
		return xPx, yPx
	}
	return -1.0, -1.0
}
