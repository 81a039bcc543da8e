package k4a_test

import (
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/k4a"
)

func TestCalibrationZeroValue(t *testing.T) {
	var cal k4a.Calibration
	test.That(t, cal.ColorResolutionWidth(), test.ShouldEqual, 0)
	test.That(t, cal.ColorResolutionHeight(), test.ShouldEqual, 0)
	test.That(t, cal.DepthResolutionWidth(), test.ShouldEqual, 0)
	test.That(t, cal.DepthResolutionHeight(), test.ShouldEqual, 0)
	test.That(t, cal.DepthMode, test.ShouldEqual, k4a.DepthModeOff)
	test.That(t, cal.ColorResolution, test.ShouldEqual, k4a.ColorResolutionOff)
}

func TestCalibrationAccessors(t *testing.T) {
	var cal k4a.Calibration
	cal.ColorCameraCalibration.ResolutionWidth = 1280
	cal.ColorCameraCalibration.ResolutionHeight = 720
	cal.DepthCameraCalibration.ResolutionWidth = 640
	cal.DepthCameraCalibration.ResolutionHeight = 576

	test.That(t, cal.ColorResolutionWidth(), test.ShouldEqual, 1280)
	test.That(t, cal.ColorResolutionHeight(), test.ShouldEqual, 720)
	test.That(t, cal.DepthResolutionWidth(), test.ShouldEqual, 640)
	test.That(t, cal.DepthResolutionHeight(), test.ShouldEqual, 576)
}

func TestCalibrationString(t *testing.T) {
	var cal k4a.Calibration
	cal.DepthMode = k4a.DepthModeNFOVUnbinned
	cal.ColorResolution = k4a.ColorResolution720p
	cal.DepthCameraCalibration.ResolutionWidth = 640
	cal.DepthCameraCalibration.ResolutionHeight = 576
	cal.DepthCameraCalibration.Intrinsics.Type = k4a.CalibrationModelBrownConrady
	cal.DepthCameraCalibration.Intrinsics.ParameterCount = 14
	cal.DepthCameraCalibration.Intrinsics.Parameters.Cx = 321.5
	cal.DepthCameraCalibration.Intrinsics.Parameters.P2 = 0.25
	cal.DepthCameraCalibration.Intrinsics.Parameters.P1 = 0.5

	out := cal.String()
	test.That(t, out, test.ShouldContainSubstring, "depth mode NFOVUnbinned")
	test.That(t, out, test.ShouldContainSubstring, "color resolution 720p")
	test.That(t, out, test.ShouldContainSubstring, "640x576")
	test.That(t, out, test.ShouldContainSubstring, "BrownConrady (14 parameters)")
	test.That(t, out, test.ShouldContainSubstring, "cx: 321.5")
	test.That(t, out, test.ShouldContainSubstring, "p2: 0.25 p1: 0.5")

	// both camera blocks are always dumped
	test.That(t, strings.Count(out, "extrinsics rotation"), test.ShouldEqual, 2)
}

func TestCalibrationModelTypeString(t *testing.T) {
	test.That(t, k4a.CalibrationModelUnknown.String(), test.ShouldEqual, "Unknown")
	test.That(t, k4a.CalibrationModelTheta.String(), test.ShouldEqual, "Theta")
	test.That(t, k4a.CalibrationModelPolynomial3K.String(), test.ShouldEqual, "Polynomial3K")
	test.That(t, k4a.CalibrationModelRational6KT.String(), test.ShouldEqual, "Rational6KT")
	test.That(t, k4a.CalibrationModelBrownConrady.String(), test.ShouldEqual, "BrownConrady")
}

func TestCalibrationTypeString(t *testing.T) {
	test.That(t, k4a.CalibrationTypeDepth.String(), test.ShouldEqual, "Depth")
	test.That(t, k4a.CalibrationTypeColor.String(), test.ShouldEqual, "Color")
	test.That(t, k4a.CalibrationTypeGyro.String(), test.ShouldEqual, "Gyro")
	test.That(t, k4a.CalibrationTypeAccel.String(), test.ShouldEqual, "Accel")
}
