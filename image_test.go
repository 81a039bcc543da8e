package k4a_test

import (
	"errors"
	"testing"

	"go.viam.com/test"

	"go.viam.com/k4a"
	"go.viam.com/k4a/testutils/inject"
)

func TestNewImage(t *testing.T) {
	sdk := &inject.SDK{}
	var createdFormat k4a.ImageFormat
	var createdW, createdH, createdStride int32
	sdk.ImageCreateFunc = func(format k4a.ImageFormat, widthPixels, heightPixels, strideBytes int32) (k4a.ImageHandle, k4a.Result) {
		createdFormat, createdW, createdH, createdStride = format, widthPixels, heightPixels, strideBytes
		return 21, k4a.ResultSucceeded
	}

	img, err := k4a.NewImageWithSDK(sdk, k4a.FormatDepth16, 640, 576, 1280)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Handle(), test.ShouldEqual, k4a.ImageHandle(21))
	test.That(t, createdFormat, test.ShouldEqual, k4a.FormatDepth16)
	test.That(t, createdW, test.ShouldEqual, 640)
	test.That(t, createdH, test.ShouldEqual, 576)
	test.That(t, createdStride, test.ShouldEqual, 1280)
}

func TestNewImageFailed(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.ImageCreateFunc = func(format k4a.ImageFormat, widthPixels, heightPixels, strideBytes int32) (k4a.ImageHandle, k4a.Result) {
		return 0, k4a.ResultFailed
	}

	_, err := k4a.NewImageWithSDK(sdk, k4a.FormatColorBGRA32, -1, -1, 0)
	var createErr *k4a.CreateImageError
	test.That(t, errors.As(err, &createErr), test.ShouldBeTrue)
	test.That(t, createErr.Code, test.ShouldEqual, k4a.ResultFailed)
}

func TestNewImageNoSDK(t *testing.T) {
	k4a.RegisterSDK(nil)
	_, err := k4a.NewImage(k4a.FormatDepth16, 640, 576, 0)
	test.That(t, errors.Is(err, k4a.ErrNoSDK), test.ShouldBeTrue)
}

func TestImageAccessors(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	sdk := &inject.SDK{}
	sdk.ImageCreateFunc = func(format k4a.ImageFormat, widthPixels, heightPixels, strideBytes int32) (k4a.ImageHandle, k4a.Result) {
		return 21, k4a.ResultSucceeded
	}
	sdk.ImageGetWidthPixelsFunc = func(image k4a.ImageHandle) int32 {
		return 2
	}
	sdk.ImageGetHeightPixelsFunc = func(image k4a.ImageHandle) int32 {
		return 1
	}
	sdk.ImageGetStrideBytesFunc = func(image k4a.ImageHandle) int32 {
		return 4
	}
	sdk.ImageGetSizeFunc = func(image k4a.ImageHandle) uint64 {
		return uint64(len(buf))
	}
	sdk.ImageGetBufferFunc = func(image k4a.ImageHandle) []byte {
		return buf
	}
	sdk.ImageGetFormatFunc = func(image k4a.ImageHandle) k4a.ImageFormat {
		return k4a.FormatIR16
	}

	img, err := k4a.NewImageWithSDK(sdk, k4a.FormatIR16, 2, 1, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.WidthPixels(), test.ShouldEqual, 2)
	test.That(t, img.HeightPixels(), test.ShouldEqual, 1)
	test.That(t, img.StrideBytes(), test.ShouldEqual, 4)
	test.That(t, img.Size(), test.ShouldEqual, 4)
	test.That(t, img.Format(), test.ShouldEqual, k4a.FormatIR16)
	test.That(t, img.Buffer(), test.ShouldResemble, buf)

	// the buffer is a shared view, not a copy
	img.Buffer()[0] = 9
	test.That(t, buf[0], test.ShouldEqual, 9)
}

func TestImageClone(t *testing.T) {
	sdk := &inject.SDK{}
	var refs, releases int
	sdk.ImageCreateFunc = func(format k4a.ImageFormat, widthPixels, heightPixels, strideBytes int32) (k4a.ImageHandle, k4a.Result) {
		return 21, k4a.ResultSucceeded
	}
	sdk.ImageReferenceFunc = func(image k4a.ImageHandle) {
		test.That(t, image, test.ShouldEqual, k4a.ImageHandle(21))
		refs++
	}
	sdk.ImageReleaseFunc = func(image k4a.ImageHandle) {
		test.That(t, image, test.ShouldEqual, k4a.ImageHandle(21))
		releases++
	}

	img, err := k4a.NewImageWithSDK(sdk, k4a.FormatCustom8, 8, 8, 8)
	test.That(t, err, test.ShouldBeNil)
	clone := img.Clone()
	test.That(t, refs, test.ShouldEqual, 1)

	img.Close()
	img.Close()
	test.That(t, releases, test.ShouldEqual, 1)
	clone.Close()
	test.That(t, releases, test.ShouldEqual, 2)
}

func TestImageUseAfterClose(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.ImageCreateFunc = func(format k4a.ImageFormat, widthPixels, heightPixels, strideBytes int32) (k4a.ImageHandle, k4a.Result) {
		return 21, k4a.ResultSucceeded
	}
	sdk.ImageReleaseFunc = func(image k4a.ImageHandle) {}

	img, err := k4a.NewImageWithSDK(sdk, k4a.FormatCustom16, 8, 8, 16)
	test.That(t, err, test.ShouldBeNil)
	img.Close()

	test.That(t, func() { img.Buffer() }, test.ShouldPanic)
	test.That(t, func() { img.WidthPixels() }, test.ShouldPanic)
	test.That(t, func() { img.Clone() }, test.ShouldPanic)
}
