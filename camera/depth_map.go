package camera

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"go.viam.com/k4a"
)

// DepthMap is a row major grid of depth readings in millimeters. A zero
// reading means the sensor produced no data for that pixel. It implements
// image.Image with a 16 bit gray color model.
type DepthMap struct {
	width  int
	height int
	data   []uint16
}

// NewEmptyDepthMap returns a zeroed depth map of the given dimensions.
func NewEmptyDepthMap(width, height int) *DepthMap {
	return &DepthMap{
		width:  width,
		height: height,
		data:   make([]uint16, width*height),
	}
}

// DepthMapFromImage copies a Depth16 native image into a DepthMap.
func DepthMapFromImage(img *k4a.Image) (*DepthMap, error) {
	if img.Format() != k4a.FormatDepth16 {
		return nil, errors.Errorf("expected %s image, got %s", k4a.FormatDepth16, img.Format())
	}
	width := int(img.WidthPixels())
	height := int(img.HeightPixels())
	stride := int(img.StrideBytes())
	buf := img.Buffer()
	dm := NewEmptyDepthMap(width, height)
	for y := 0; y < height; y++ {
		src := buf[y*stride:]
		for x := 0; x < width; x++ {
			dm.data[y*width+x] = binary.LittleEndian.Uint16(src[2*x:])
		}
	}
	return dm, nil
}

// Width returns the width in pixels.
func (dm *DepthMap) Width() int {
	return dm.width
}

// Height returns the height in pixels.
func (dm *DepthMap) Height() int {
	return dm.height
}

// GetDepth returns the reading at (x, y) in millimeters.
func (dm *DepthMap) GetDepth(x, y int) uint16 {
	return dm.data[y*dm.width+x]
}

// Set stores a reading at (x, y).
func (dm *DepthMap) Set(x, y int, depth uint16) {
	dm.data[y*dm.width+x] = depth
}

// MinMax returns the smallest and largest nonzero readings.
func (dm *DepthMap) MinMax() (uint16, uint16) {
	min := uint16(math.MaxUint16)
	max := uint16(0)
	for _, z := range dm.data {
		if z == 0 {
			continue
		}
		if z < min {
			min = z
		}
		if z > max {
			max = z
		}
	}
	if max == 0 {
		return 0, 0
	}
	return min, max
}

// ColorModel implements image.Image.
func (dm *DepthMap) ColorModel() color.Model {
	return color.Gray16Model
}

// Bounds implements image.Image.
func (dm *DepthMap) Bounds() image.Rectangle {
	return image.Rect(0, 0, dm.width, dm.height)
}

// At implements image.Image.
func (dm *DepthMap) At(x, y int) color.Color {
	return color.Gray16{Y: dm.GetDepth(x, y)}
}

// ToGray16 renders the map into a Gray16 image.
func (dm *DepthMap) ToGray16() *image.Gray16 {
	img := image.NewGray16(dm.Bounds())
	for y := 0; y < dm.height; y++ {
		for x := 0; x < dm.width; x++ {
			img.SetGray16(x, y, color.Gray16{Y: dm.GetDepth(x, y)})
		}
	}
	return img
}

// ToPrettyPicture renders the map for human viewing, sweeping a hue ramp
// from near to far. Readings are clamped to [hardMin, hardMax] when those
// are nonzero; pixels without data stay black.
func (dm *DepthMap) ToPrettyPicture(hardMin, hardMax uint16) image.Image {
	min, max := dm.MinMax()
	if hardMin > 0 && min < hardMin {
		min = hardMin
	}
	if hardMax > 0 && max > hardMax {
		max = hardMax
	}

	img := image.NewRGBA(dm.Bounds())
	span := float64(max) - float64(min)
	for y := 0; y < dm.height; y++ {
		for x := 0; x < dm.width; x++ {
			z := dm.GetDepth(x, y)
			if z == 0 {
				continue
			}
			if z < min {
				z = min
			}
			if z > max {
				z = max
			}
			ratio := 0.0
			if span > 0 {
				ratio = float64(z-min) / span
			}
			hue := 30 + (200.0 * ratio)
			r, g, b := colorful.Hsv(hue, 1.0, 1.0).RGB255()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
