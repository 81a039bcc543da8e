package k4a

import (
	"fmt"
	"strings"
)

// CalibrationType identifies a sensor coordinate frame on the device. The
// values index the frame to frame extrinsics table.
type CalibrationType int32

// Sensor frames, matching the native ABI codes.
const (
	CalibrationTypeDepth CalibrationType = 0
	CalibrationTypeColor CalibrationType = 1
	CalibrationTypeGyro  CalibrationType = 2
	CalibrationTypeAccel CalibrationType = 3

	// CalibrationTypeCount is the number of sensor frames.
	CalibrationTypeCount = 4
)

// String returns a human readable name for the sensor frame.
func (t CalibrationType) String() string {
	switch t {
	case CalibrationTypeDepth:
		return "Depth"
	case CalibrationTypeColor:
		return "Color"
	case CalibrationTypeGyro:
		return "Gyro"
	case CalibrationTypeAccel:
		return "Accel"
	default:
		return "Unknown"
	}
}

// CalibrationModelType identifies the intrinsic model a camera was
// calibrated with.
type CalibrationModelType int32

// Intrinsic models, matching the native ABI codes.
const (
	CalibrationModelUnknown      CalibrationModelType = 0
	CalibrationModelTheta        CalibrationModelType = 1
	CalibrationModelPolynomial3K CalibrationModelType = 2
	CalibrationModelRational6KT  CalibrationModelType = 3
	CalibrationModelBrownConrady CalibrationModelType = 4
)

// String returns a human readable name for the intrinsic model.
func (t CalibrationModelType) String() string {
	switch t {
	case CalibrationModelTheta:
		return "Theta"
	case CalibrationModelPolynomial3K:
		return "Polynomial3K"
	case CalibrationModelRational6KT:
		return "Rational6KT"
	case CalibrationModelBrownConrady:
		return "BrownConrady"
	default:
		return "Unknown"
	}
}

// Extrinsics places one sensor frame within another: a row major 3x3
// rotation followed by a translation in millimeters.
type Extrinsics struct {
	Rotation    [9]float32
	Translation [3]float32
}

// IntrinsicParameters is the flattened intrinsic parameter block. The field
// order matches the native layout exactly; note that P2 precedes P1.
type IntrinsicParameters struct {
	Cx           float32
	Cy           float32
	Fx           float32
	Fy           float32
	K1           float32
	K2           float32
	K3           float32
	K4           float32
	K5           float32
	K6           float32
	Codx         float32
	Cody         float32
	P2           float32
	P1           float32
	MetricRadius float32
}

// Intrinsics carries a camera's intrinsic model and its parameters.
type Intrinsics struct {
	Type           CalibrationModelType
	ParameterCount uint32
	Parameters     IntrinsicParameters
}

// CameraCalibration describes one camera: its placement relative to the
// depth camera, its intrinsics, and its sensor geometry.
type CameraCalibration struct {
	Extrinsics       Extrinsics
	Intrinsics       Intrinsics
	ResolutionWidth  int32
	ResolutionHeight int32
	MetricRadius     float32
}

// Calibration is the transcribed device calibration for one pairing of depth
// mode and color resolution. It is a plain value with no native resource
// behind it. The zero value is a well formed placeholder whose accessors all
// report zero.
type Calibration struct {
	DepthCameraCalibration CameraCalibration
	ColorCameraCalibration CameraCalibration
	// Extrinsics[from][to] places frame from within frame to.
	Extrinsics      [CalibrationTypeCount][CalibrationTypeCount]Extrinsics
	DepthMode       DepthMode
	ColorResolution ColorResolution
}

// ColorResolutionWidth returns the color camera width in pixels.
func (c *Calibration) ColorResolutionWidth() int32 {
	return c.ColorCameraCalibration.ResolutionWidth
}

// ColorResolutionHeight returns the color camera height in pixels.
func (c *Calibration) ColorResolutionHeight() int32 {
	return c.ColorCameraCalibration.ResolutionHeight
}

// DepthResolutionWidth returns the depth camera width in pixels.
func (c *Calibration) DepthResolutionWidth() int32 {
	return c.DepthCameraCalibration.ResolutionWidth
}

// DepthResolutionHeight returns the depth camera height in pixels.
func (c *Calibration) DepthResolutionHeight() int32 {
	return c.DepthCameraCalibration.ResolutionHeight
}

// String returns a diagnostic dump of the calibration, including every
// intrinsic parameter of both cameras.
func (c Calibration) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "calibration (depth mode %s, color resolution %s)\n", c.DepthMode, c.ColorResolution)
	dumpCamera(&b, "depth", &c.DepthCameraCalibration)
	dumpCamera(&b, "color", &c.ColorCameraCalibration)
	return b.String()
}

func dumpCamera(b *strings.Builder, name string, cc *CameraCalibration) {
	p := &cc.Intrinsics.Parameters
	fmt.Fprintf(b, "%s camera:\n", name)
	fmt.Fprintf(b, "  resolution: %dx%d\n", cc.ResolutionWidth, cc.ResolutionHeight)
	fmt.Fprintf(b, "  metric radius: %v\n", cc.MetricRadius)
	fmt.Fprintf(b, "  extrinsics rotation: %v\n", cc.Extrinsics.Rotation)
	fmt.Fprintf(b, "  extrinsics translation: %v\n", cc.Extrinsics.Translation)
	fmt.Fprintf(b, "  model: %s (%d parameters)\n", cc.Intrinsics.Type, cc.Intrinsics.ParameterCount)
	fmt.Fprintf(b, "  cx: %v cy: %v\n", p.Cx, p.Cy)
	fmt.Fprintf(b, "  fx: %v fy: %v\n", p.Fx, p.Fy)
	fmt.Fprintf(b, "  k1: %v k2: %v k3: %v k4: %v k5: %v k6: %v\n", p.K1, p.K2, p.K3, p.K4, p.K5, p.K6)
	fmt.Fprintf(b, "  codx: %v cody: %v\n", p.Codx, p.Cody)
	fmt.Fprintf(b, "  p2: %v p1: %v\n", p.P2, p.P1)
	fmt.Fprintf(b, "  metric radius (intrinsic): %v\n", p.MetricRadius)
}
