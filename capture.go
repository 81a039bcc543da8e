package k4a

import "sync"

// Capture is one synchronized set of images delivered by a device. The
// underlying capture is reference counted by the native layer: Clone adds a
// reference, Close drops one, and the capture is freed when the last
// reference is dropped. Wrappers may be handed between goroutines, but each
// individual wrapper must not be used concurrently with its own Close.
//
// Using a capture after closing it panics.
type Capture struct {
	sdk    SDK
	handle CaptureHandle

	mu     sync.Mutex
	closed bool
}

func newCapture(sdk SDK, handle CaptureHandle) *Capture {
	return &Capture{sdk: sdk, handle: handle}
}

func (c *Capture) mustBorrow() CaptureHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		panic("k4a: use of closed Capture")
	}
	return c.handle
}

// DepthImage returns the capture's depth image, or false if the capture
// carries none. The caller owns the returned image and must close it.
func (c *Capture) DepthImage() (*Image, bool) {
	h := c.mustBorrow()
	img := c.sdk.CaptureGetDepthImage(h)
	if img == 0 {
		return nil, false
	}
	return newImage(c.sdk, img), true
}

// ColorImage returns the capture's color image, or false if the capture
// carries none. The caller owns the returned image and must close it.
func (c *Capture) ColorImage() (*Image, bool) {
	h := c.mustBorrow()
	img := c.sdk.CaptureGetColorImage(h)
	if img == 0 {
		return nil, false
	}
	return newImage(c.sdk, img), true
}

// IRImage returns the capture's infrared image, or false if the capture
// carries none. The caller owns the returned image and must close it.
func (c *Capture) IRImage() (*Image, bool) {
	h := c.mustBorrow()
	img := c.sdk.CaptureGetIRImage(h)
	if img == 0 {
		return nil, false
	}
	return newImage(c.sdk, img), true
}

// Clone adds a reference to the underlying capture and returns a new wrapper
// sharing it. Each wrapper is closed independently.
func (c *Capture) Clone() *Capture {
	h := c.mustBorrow()
	c.sdk.CaptureReference(h)
	return newCapture(c.sdk, h)
}

// Handle returns the underlying native handle without transferring
// ownership.
func (c *Capture) Handle() CaptureHandle {
	return c.mustBorrow()
}

// Close drops this wrapper's reference. Further calls are no-ops.
func (c *Capture) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.sdk.CaptureRelease(c.handle)
}
