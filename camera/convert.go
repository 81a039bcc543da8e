package camera

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"

	"github.com/pkg/errors"

	"go.viam.com/k4a"
)

// ConvertImage converts a native image to a Go image based on its format.
// Pixel data is copied, so the native image may be released as soon as the
// conversion returns.
func ConvertImage(img *k4a.Image) (image.Image, error) {
	switch img.Format() {
	case k4a.FormatColorBGRA32:
		return BGRAToRGBA(img)
	case k4a.FormatColorMJPEG:
		return DecodeMJPEG(img)
	case k4a.FormatColorNV12:
		return NV12ToYCbCr(img)
	case k4a.FormatColorYUY2:
		return YUY2ToYCbCr(img)
	case k4a.FormatDepth16:
		return DepthMapFromImage(img)
	case k4a.FormatIR16:
		return IRToGray16(img)
	default:
		return nil, errors.Errorf("no conversion for format %s", img.Format())
	}
}

// BGRAToRGBA converts a BGRA32 native image into an RGBA image.
func BGRAToRGBA(img *k4a.Image) (*image.RGBA, error) {
	if img.Format() != k4a.FormatColorBGRA32 {
		return nil, errors.Errorf("expected %s image, got %s", k4a.FormatColorBGRA32, img.Format())
	}
	width := int(img.WidthPixels())
	height := int(img.HeightPixels())
	stride := int(img.StrideBytes())
	buf := img.Buffer()
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := buf[y*stride:]
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < width; x++ {
			dst[4*x+0] = src[4*x+2]
			dst[4*x+1] = src[4*x+1]
			dst[4*x+2] = src[4*x+0]
			dst[4*x+3] = src[4*x+3]
		}
	}
	return out, nil
}

// IRToGray16 converts an IR16 native image into a Gray16 image.
func IRToGray16(img *k4a.Image) (*image.Gray16, error) {
	if img.Format() != k4a.FormatIR16 {
		return nil, errors.Errorf("expected %s image, got %s", k4a.FormatIR16, img.Format())
	}
	width := int(img.WidthPixels())
	height := int(img.HeightPixels())
	stride := int(img.StrideBytes())
	buf := img.Buffer()
	out := image.NewGray16(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := buf[y*stride:]
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < width; x++ {
			// native pixels are little endian, Gray16 wants big endian
			binary.BigEndian.PutUint16(dst[2*x:], binary.LittleEndian.Uint16(src[2*x:]))
		}
	}
	return out, nil
}

// NV12ToYCbCr converts an NV12 native image into a 4:2:0 YCbCr image,
// deinterleaving the chroma plane.
func NV12ToYCbCr(img *k4a.Image) (*image.YCbCr, error) {
	if img.Format() != k4a.FormatColorNV12 {
		return nil, errors.Errorf("expected %s image, got %s", k4a.FormatColorNV12, img.Format())
	}
	width := int(img.WidthPixels())
	height := int(img.HeightPixels())
	stride := int(img.StrideBytes())
	buf := img.Buffer()
	out := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio420)
	for y := 0; y < height; y++ {
		copy(out.Y[y*out.YStride:y*out.YStride+width], buf[y*stride:])
	}
	chroma := buf[stride*height:]
	for y := 0; y < height/2; y++ {
		row := chroma[y*stride:]
		for x := 0; x < width/2; x++ {
			out.Cb[y*out.CStride+x] = row[2*x]
			out.Cr[y*out.CStride+x] = row[2*x+1]
		}
	}
	return out, nil
}

// YUY2ToYCbCr converts a YUY2 native image into a 4:2:2 YCbCr image.
func YUY2ToYCbCr(img *k4a.Image) (*image.YCbCr, error) {
	if img.Format() != k4a.FormatColorYUY2 {
		return nil, errors.Errorf("expected %s image, got %s", k4a.FormatColorYUY2, img.Format())
	}
	width := int(img.WidthPixels())
	height := int(img.HeightPixels())
	stride := int(img.StrideBytes())
	buf := img.Buffer()
	out := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio422)
	for y := 0; y < height; y++ {
		src := buf[y*stride:]
		for x := 0; x < width/2; x++ {
			out.Y[y*out.YStride+2*x] = src[4*x]
			out.Cb[y*out.CStride+x] = src[4*x+1]
			out.Y[y*out.YStride+2*x+1] = src[4*x+2]
			out.Cr[y*out.CStride+x] = src[4*x+3]
		}
	}
	return out, nil
}

// DecodeMJPEG decodes one MJPEG frame.
func DecodeMJPEG(img *k4a.Image) (image.Image, error) {
	if img.Format() != k4a.FormatColorMJPEG {
		return nil, errors.Errorf("expected %s image, got %s", k4a.FormatColorMJPEG, img.Format())
	}
	decoded, err := jpeg.Decode(bytes.NewReader(img.Buffer()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode MJPEG frame")
	}
	return decoded, nil
}
