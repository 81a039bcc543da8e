package fake

import "go.viam.com/k4a"

// NewCalibration builds a plausible factory calibration for the given mode
// pairing. Intrinsics follow the Brown Conrady model the hardware reports,
// scaled to the sensor dimensions. The depth camera anchors the device
// frame; the color camera sits a few centimeters to the side with a slight
// downward tilt. Frame pairs the fixture does not model keep identity
// transforms.
func NewCalibration(depthMode k4a.DepthMode, resolution k4a.ColorResolution) k4a.Calibration {
	var cal k4a.Calibration
	cal.DepthMode = depthMode
	cal.ColorResolution = resolution

	// a 6 degree tilt about x, rotations orthonormal to five decimals
	depthToColor := k4a.Extrinsics{
		Rotation: [9]float32{
			1, 0, 0,
			0, 0.99452, -0.10453,
			0, 0.10453, 0.99452,
		},
		Translation: [3]float32{-32, -2, 4},
	}
	colorToDepth := k4a.Extrinsics{
		Rotation: [9]float32{
			1, 0, 0,
			0, 0.99452, 0.10453,
			0, -0.10453, 0.99452,
		},
		Translation: [3]float32{32, 1.5709, -4.1871},
	}

	if res, ok := depthMode.Resolution(); ok {
		cal.DepthCameraCalibration = depthCameraFixture(res)
	}
	if res, ok := resolution.Resolution(); ok {
		cal.ColorCameraCalibration = colorCameraFixture(res)
		cal.ColorCameraCalibration.Extrinsics = depthToColor
	}

	for from := 0; from < k4a.CalibrationTypeCount; from++ {
		for to := 0; to < k4a.CalibrationTypeCount; to++ {
			cal.Extrinsics[from][to] = identityExtrinsics()
		}
	}
	cal.Extrinsics[k4a.CalibrationTypeDepth][k4a.CalibrationTypeColor] = depthToColor
	cal.Extrinsics[k4a.CalibrationTypeColor][k4a.CalibrationTypeDepth] = colorToDepth
	cal.Extrinsics[k4a.CalibrationTypeDepth][k4a.CalibrationTypeGyro] = translated(-51, 3.3, 1.4)
	cal.Extrinsics[k4a.CalibrationTypeGyro][k4a.CalibrationTypeDepth] = translated(51, -3.3, -1.4)
	cal.Extrinsics[k4a.CalibrationTypeDepth][k4a.CalibrationTypeAccel] = translated(-51, 1.2, 1.4)
	cal.Extrinsics[k4a.CalibrationTypeAccel][k4a.CalibrationTypeDepth] = translated(51, -1.2, -1.4)
	return cal
}

func identityExtrinsics() k4a.Extrinsics {
	return k4a.Extrinsics{Rotation: [9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

func translated(x, y, z float32) k4a.Extrinsics {
	e := identityExtrinsics()
	e.Translation = [3]float32{x, y, z}
	return e
}

func depthCameraFixture(res k4a.Resolution) k4a.CameraCalibration {
	w, h := float32(res.Width), float32(res.Height)
	return k4a.CameraCalibration{
		Extrinsics:       identityExtrinsics(),
		ResolutionWidth:  res.Width,
		ResolutionHeight: res.Height,
		MetricRadius:     1.74,
		Intrinsics: k4a.Intrinsics{
			Type:           k4a.CalibrationModelBrownConrady,
			ParameterCount: 14,
			Parameters: k4a.IntrinsicParameters{
				Cx:           0.5*w + 3.7,
				Cy:           0.5*h - 2.1,
				Fx:           0.785 * w,
				Fy:           0.787 * w,
				K1:           0.6934,
				K2:           -2.8768,
				K3:           1.6918,
				K4:           0.5726,
				K5:           -2.6903,
				K6:           1.6087,
				P2:           0.000067,
				P1:           -0.000097,
				MetricRadius: 1.74,
			},
		},
	}
}

func colorCameraFixture(res k4a.Resolution) k4a.CameraCalibration {
	w, h := float32(res.Width), float32(res.Height)
	return k4a.CameraCalibration{
		Extrinsics:       identityExtrinsics(),
		ResolutionWidth:  res.Width,
		ResolutionHeight: res.Height,
		MetricRadius:     1.7,
		Intrinsics: k4a.Intrinsics{
			Type:           k4a.CalibrationModelBrownConrady,
			ParameterCount: 14,
			Parameters: k4a.IntrinsicParameters{
				Cx:           0.5*w - 0.9,
				Cy:           0.5*h + 4.6,
				Fx:           0.4752 * w,
				Fy:           0.4747 * w,
				K1:           0.6794,
				K2:           -2.7749,
				K3:           1.5892,
				K4:           0.5577,
				K5:           -2.585,
				K6:           1.511,
				P2:           -0.000284,
				P1:           0.000479,
				MetricRadius: 1.7,
			},
		},
	}
}
