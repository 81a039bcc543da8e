package k4a_test

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/k4a"
	"go.viam.com/k4a/testutils/inject"
)

func newTestCapture(t *testing.T, sdk *inject.SDK) *k4a.Capture {
	t.Helper()
	sdk.DeviceOpenFunc = func(index uint32) (k4a.DeviceHandle, k4a.Result) {
		return 42, k4a.ResultSucceeded
	}
	sdk.DeviceGetCaptureFunc = func(device k4a.DeviceHandle, timeoutMS int32) (k4a.CaptureHandle, k4a.WaitResult) {
		return 7, k4a.WaitResultSucceeded
	}
	dev, err := k4a.OpenWithSDK(sdk, 0)
	test.That(t, err, test.ShouldBeNil)
	capture, err := dev.GetCapture(0)
	test.That(t, err, test.ShouldBeNil)
	return capture
}

func TestCaptureImages(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.CaptureGetDepthImageFunc = func(capture k4a.CaptureHandle) k4a.ImageHandle {
		return 11
	}
	sdk.CaptureGetColorImageFunc = func(capture k4a.CaptureHandle) k4a.ImageHandle {
		return 0
	}
	sdk.CaptureGetIRImageFunc = func(capture k4a.CaptureHandle) k4a.ImageHandle {
		return 13
	}
	sdk.ImageReleaseFunc = func(image k4a.ImageHandle) {}
	capture := newTestCapture(t, sdk)

	depth, ok := capture.DepthImage()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, depth.Handle(), test.ShouldEqual, k4a.ImageHandle(11))
	depth.Close()

	// the color slot is empty on this capture
	color, ok := capture.ColorImage()
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, color, test.ShouldBeNil)

	ir, ok := capture.IRImage()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, ir.Handle(), test.ShouldEqual, k4a.ImageHandle(13))
	ir.Close()
}

func TestCaptureClone(t *testing.T) {
	sdk := &inject.SDK{}
	var refs, releases int
	sdk.CaptureReferenceFunc = func(capture k4a.CaptureHandle) {
		test.That(t, capture, test.ShouldEqual, k4a.CaptureHandle(7))
		refs++
	}
	sdk.CaptureReleaseFunc = func(capture k4a.CaptureHandle) {
		test.That(t, capture, test.ShouldEqual, k4a.CaptureHandle(7))
		releases++
	}
	capture := newTestCapture(t, sdk)

	clone := capture.Clone()
	test.That(t, refs, test.ShouldEqual, 1)
	test.That(t, clone.Handle(), test.ShouldEqual, capture.Handle())

	capture.Close()
	test.That(t, releases, test.ShouldEqual, 1)

	// the clone still works after the original closes
	clone.Close()
	test.That(t, releases, test.ShouldEqual, 2)
}

func TestCaptureCloseIdempotent(t *testing.T) {
	sdk := &inject.SDK{}
	var releases int
	sdk.CaptureReleaseFunc = func(capture k4a.CaptureHandle) {
		releases++
	}
	capture := newTestCapture(t, sdk)

	capture.Close()
	capture.Close()
	test.That(t, releases, test.ShouldEqual, 1)
}

func TestCaptureUseAfterClose(t *testing.T) {
	sdk := &inject.SDK{}
	sdk.CaptureReleaseFunc = func(capture k4a.CaptureHandle) {}
	capture := newTestCapture(t, sdk)
	capture.Close()

	test.That(t, func() { capture.DepthImage() }, test.ShouldPanic)
	test.That(t, func() { capture.Clone() }, test.ShouldPanic)
	test.That(t, func() { capture.Handle() }, test.ShouldPanic)
}
