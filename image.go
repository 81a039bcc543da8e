package k4a

import "sync"

// Image is a single frame buffer and its descriptive metadata. Images are
// reference counted the same way captures are: Clone adds a reference, Close
// drops one, and the buffer is freed when the last reference is dropped.
//
// Using an image after closing it panics.
type Image struct {
	sdk    SDK
	handle ImageHandle

	mu     sync.Mutex
	closed bool
}

func newImage(sdk SDK, handle ImageHandle) *Image {
	return &Image{sdk: sdk, handle: handle}
}

// NewImage allocates an image through the registered SDK. A strideBytes of 0
// requests the minimal stride for the format; formats without a fixed stride
// (such as MJPEG) cannot be allocated that way.
func NewImage(format ImageFormat, widthPixels, heightPixels, strideBytes int32) (*Image, error) {
	sdk, err := DefaultSDK()
	if err != nil {
		return nil, err
	}
	return NewImageWithSDK(sdk, format, widthPixels, heightPixels, strideBytes)
}

// NewImageWithSDK allocates an image against an explicit SDK implementation.
func NewImageWithSDK(sdk SDK, format ImageFormat, widthPixels, heightPixels, strideBytes int32) (*Image, error) {
	handle, res := sdk.ImageCreate(format, widthPixels, heightPixels, strideBytes)
	if res != ResultSucceeded {
		return nil, &CreateImageError{Code: res}
	}
	return newImage(sdk, handle), nil
}

func (im *Image) mustBorrow() ImageHandle {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.closed {
		panic("k4a: use of closed Image")
	}
	return im.handle
}

// WidthPixels returns the image width in pixels.
func (im *Image) WidthPixels() int32 {
	return im.sdk.ImageGetWidthPixels(im.mustBorrow())
}

// HeightPixels returns the image height in pixels.
func (im *Image) HeightPixels() int32 {
	return im.sdk.ImageGetHeightPixels(im.mustBorrow())
}

// StrideBytes returns the length of one image row in bytes. Compressed
// formats report 0.
func (im *Image) StrideBytes() int32 {
	return im.sdk.ImageGetStrideBytes(im.mustBorrow())
}

// Size returns the buffer length in bytes.
func (im *Image) Size() uint64 {
	return im.sdk.ImageGetSize(im.mustBorrow())
}

// Buffer returns a view over the native pixel buffer. The bytes are shared
// with the native layer and remain valid only until the last reference to
// the image is dropped.
func (im *Image) Buffer() []byte {
	return im.sdk.ImageGetBuffer(im.mustBorrow())
}

// Format returns the pixel layout of the buffer.
func (im *Image) Format() ImageFormat {
	return im.sdk.ImageGetFormat(im.mustBorrow())
}

// Clone adds a reference to the underlying image and returns a new wrapper
// sharing it. Each wrapper is closed independently.
func (im *Image) Clone() *Image {
	h := im.mustBorrow()
	im.sdk.ImageReference(h)
	return newImage(im.sdk, h)
}

// Handle returns the underlying native handle without transferring
// ownership.
func (im *Image) Handle() ImageHandle {
	return im.mustBorrow()
}

// Close drops this wrapper's reference. Further calls are no-ops.
func (im *Image) Close() {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.closed {
		return
	}
	im.closed = true
	im.sdk.ImageRelease(im.handle)
}
