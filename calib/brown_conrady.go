package calib

import (
	"github.com/pkg/errors"

	"go.viam.com/k4a"
)

// BrownConrady is the rational lens distortion model the device reports:
// three radial numerator and three radial denominator coefficients plus two
// tangential terms. Coordinates are normalized image plane coordinates.
type BrownConrady struct {
	K1 float64
	K2 float64
	K3 float64
	K4 float64
	K5 float64
	K6 float64
	P1 float64
	P2 float64
}

// NewBrownConrady extracts the distortion coefficients from an intrinsics
// block, checking the reported lens model first.
func NewBrownConrady(intrinsics k4a.Intrinsics) (*BrownConrady, error) {
	if err := checkModel(intrinsics); err != nil {
		return nil, err
	}
	p := intrinsics.Parameters
	return &BrownConrady{
		K1: float64(p.K1),
		K2: float64(p.K2),
		K3: float64(p.K3),
		K4: float64(p.K4),
		K5: float64(p.K5),
		K6: float64(p.K6),
		P1: float64(p.P1),
		P2: float64(p.P2),
	}, nil
}

// ModelType returns the lens model these coefficients belong to.
func (bc *BrownConrady) ModelType() k4a.CalibrationModelType {
	return k4a.CalibrationModelBrownConrady
}

// CheckValid checks that a model was provided.
func (bc *BrownConrady) CheckValid() error {
	if bc == nil {
		return errors.New("no distortion model provided")
	}
	return nil
}

// Parameters returns the coefficients ordered k1 k2 k3 k4 k5 k6 p1 p2.
func (bc *BrownConrady) Parameters() []float64 {
	if bc == nil {
		return []float64{}
	}
	return []float64{bc.K1, bc.K2, bc.K3, bc.K4, bc.K5, bc.K6, bc.P1, bc.P2}
}

// Transform applies the forward distortion to a normalized image plane
// coordinate:
//
//	radial = (1 + k1*r² + k2*r⁴ + k3*r⁶) / (1 + k4*r² + k5*r⁴ + k6*r⁶)
//	xd = x*radial + 2*p1*x*y + p2*(r² + 2*x²)
//	yd = y*radial + 2*p2*x*y + p1*(r² + 2*y²)
func (bc *BrownConrady) Transform(x, y float64) (float64, float64) {
	if bc == nil {
		return x, y
	}
	r2 := x*x + y*y
	r4 := r2 * r2
	r6 := r4 * r2
	denominator := 1 + bc.K4*r2 + bc.K5*r4 + bc.K6*r6
	if denominator == 0 {
		return x, y
	}
	radial := (1 + bc.K1*r2 + bc.K2*r4 + bc.K3*r6) / denominator
	xd := x*radial + 2*bc.P1*x*y + bc.P2*(r2+2*x*x)
	yd := y*radial + 2*bc.P2*x*y + bc.P1*(r2+2*y*y)
	return xd, yd
}
