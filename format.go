package k4a

// ImageFormat identifies the pixel layout of an image buffer.
type ImageFormat int32

// Image formats, matching the native ABI codes.
const (
	FormatColorMJPEG  ImageFormat = 0
	FormatColorNV12   ImageFormat = 1
	FormatColorYUY2   ImageFormat = 2
	FormatColorBGRA32 ImageFormat = 3
	FormatDepth16     ImageFormat = 4
	FormatIR16        ImageFormat = 5
	FormatCustom8     ImageFormat = 6
	FormatCustom16    ImageFormat = 7
	FormatCustom      ImageFormat = 8

	// FormatUnknown stands in for codes this package does not recognize. The
	// native layer never produces it.
	FormatUnknown ImageFormat = 255
)

// ImageFormatFromCode decodes a native format code. Codes outside the known
// range decode to FormatUnknown.
func ImageFormatFromCode(code int32) ImageFormat {
	if code < int32(FormatColorMJPEG) || code > int32(FormatCustom) {
		return FormatUnknown
	}
	return ImageFormat(code)
}

// Code returns the native code for the format.
func (f ImageFormat) Code() int32 {
	return int32(f)
}

// String returns a human readable name for the format.
func (f ImageFormat) String() string {
	switch f {
	case FormatColorMJPEG:
		return "ColorMJPEG"
	case FormatColorNV12:
		return "ColorNV12"
	case FormatColorYUY2:
		return "ColorYUY2"
	case FormatColorBGRA32:
		return "ColorBGRA32"
	case FormatDepth16:
		return "Depth16"
	case FormatIR16:
		return "IR16"
	case FormatCustom8:
		return "Custom8"
	case FormatCustom16:
		return "Custom16"
	case FormatCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}
