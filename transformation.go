package k4a

import "sync"

// Transformation owns a native transformation engine derived from a device
// calibration. Unlike Capture and Image it is not reference counted: a
// Transformation has exactly one owner and Close destroys the engine exactly
// once. There is deliberately no Clone.
type Transformation struct {
	sdk    SDK
	handle TransformationHandle

	colorResolution Resolution
	depthResolution Resolution

	mu     sync.Mutex
	closed bool
}

// NewTransformation builds a transformation engine from a calibration using
// the registered SDK.
func NewTransformation(calibration Calibration) (*Transformation, error) {
	sdk, err := DefaultSDK()
	if err != nil {
		return nil, err
	}
	return NewTransformationWithSDK(sdk, calibration)
}

// NewTransformationWithSDK builds a transformation engine against an
// explicit SDK implementation.
func NewTransformationWithSDK(sdk SDK, calibration Calibration) (*Transformation, error) {
	handle := sdk.TransformationCreate(&calibration)
	if handle == 0 {
		return nil, ErrTransformationCreate
	}
	return &Transformation{
		sdk:    sdk,
		handle: handle,
		colorResolution: Resolution{
			Width:  calibration.ColorResolutionWidth(),
			Height: calibration.ColorResolutionHeight(),
		},
		depthResolution: Resolution{
			Width:  calibration.DepthResolutionWidth(),
			Height: calibration.DepthResolutionHeight(),
		},
	}, nil
}

// ColorResolution returns the color camera size recorded from the
// calibration at construction.
func (t *Transformation) ColorResolution() Resolution {
	return t.colorResolution
}

// DepthResolution returns the depth camera size recorded from the
// calibration at construction.
func (t *Transformation) DepthResolution() Resolution {
	return t.depthResolution
}

// Handle returns the underlying native handle without transferring
// ownership. After Close it returns the null handle.
func (t *Transformation) Handle() TransformationHandle {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0
	}
	return t.handle
}

// Close destroys the native engine. Further calls are no-ops.
func (t *Transformation) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	h := t.handle
	t.handle = 0
	t.mu.Unlock()
	t.sdk.TransformationDestroy(h)
}
