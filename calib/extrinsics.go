package calib

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/k4a"
)

// CameraExtrinsics is a rigid transform between two sensor frames: a 3x3
// rotation and a translation in millimeters.
type CameraExtrinsics struct {
	Rotation    *mat.Dense
	Translation r3.Vector
}

// NewCameraExtrinsics converts a factory extrinsics block.
func NewCameraExtrinsics(e k4a.Extrinsics) CameraExtrinsics {
	data := make([]float64, 9)
	for i, v := range e.Rotation {
		data[i] = float64(v)
	}
	return CameraExtrinsics{
		Rotation: mat.NewDense(3, 3, data),
		Translation: r3.Vector{
			X: float64(e.Translation[0]),
			Y: float64(e.Translation[1]),
			Z: float64(e.Translation[2]),
		},
	}
}

// ExtrinsicsBetween returns the transform taking points in the from frame
// to the to frame.
func ExtrinsicsBetween(cal k4a.Calibration, from, to k4a.CalibrationType) (CameraExtrinsics, error) {
	if from < 0 || int(from) >= k4a.CalibrationTypeCount {
		return CameraExtrinsics{}, errors.Errorf("unknown source frame %d", from)
	}
	if to < 0 || int(to) >= k4a.CalibrationTypeCount {
		return CameraExtrinsics{}, errors.Errorf("unknown target frame %d", to)
	}
	return NewCameraExtrinsics(cal.Extrinsics[from][to]), nil
}

// TransformPoint maps a point in the source frame into the target frame.
func (ce CameraExtrinsics) TransformPoint(p r3.Vector) r3.Vector {
	in := mat.NewVecDense(3, []float64{p.X, p.Y, p.Z})
	var out mat.VecDense
	out.MulVec(ce.Rotation, in)
	return r3.Vector{
		X: out.AtVec(0) + ce.Translation.X,
		Y: out.AtVec(1) + ce.Translation.Y,
		Z: out.AtVec(2) + ce.Translation.Z,
	}
}

// Inverse returns the transform in the opposite direction. The rotation is
// orthonormal, so its transpose is its inverse.
func (ce CameraExtrinsics) Inverse() CameraExtrinsics {
	var rot mat.Dense
	rot.CloneFrom(ce.Rotation.T())
	in := mat.NewVecDense(3, []float64{ce.Translation.X, ce.Translation.Y, ce.Translation.Z})
	var out mat.VecDense
	out.MulVec(&rot, in)
	return CameraExtrinsics{
		Rotation:    &rot,
		Translation: r3.Vector{X: -out.AtVec(0), Y: -out.AtVec(1), Z: -out.AtVec(2)},
	}
}
