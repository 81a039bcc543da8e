// Package camera adapts an opened device into an image source usable by
// streaming and vision pipelines. A Source owns the device it wraps: it
// starts the cameras on construction and stops them and closes the device
// when closed.
package camera

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/k4a"
)

// Stream selects which sensor stream a Source reads.
type Stream int

// The streams a device can produce.
const (
	StreamColor Stream = iota
	StreamDepth
	StreamIR
)

func (s Stream) String() string {
	switch s {
	case StreamColor:
		return "color"
	case StreamDepth:
		return "depth"
	case StreamIR:
		return "ir"
	default:
		return "unknown"
	}
}

// pollInterval paces capture polls so a quiet device does not spin the CPU.
const pollInterval = 10 * time.Millisecond

// Source reads images from one sensor stream of an opened device.
type Source struct {
	device *k4a.Device
	stream Stream
	logger golog.Logger

	closeOnce sync.Once
}

// NewSource starts the device's cameras with the given configuration and
// returns a source reading the selected stream. The configuration must
// enable the sensor backing the stream. On error the device is left open
// and still belongs to the caller; on success the source owns it.
func NewSource(device *k4a.Device, config k4a.DeviceConfiguration, stream Stream, logger golog.Logger) (*Source, error) {
	switch stream {
	case StreamColor:
		if config.ColorResolution == k4a.ColorResolutionOff {
			return nil, errors.New("color stream requested but the color camera is off")
		}
	case StreamDepth:
		if config.DepthMode == k4a.DepthModeOff || config.DepthMode == k4a.DepthModePassiveIR {
			return nil, errors.New("depth stream requested but the depth camera is not measuring depth")
		}
	case StreamIR:
		if config.DepthMode == k4a.DepthModeOff {
			return nil, errors.New("infrared stream requested but the depth camera is off")
		}
	default:
		return nil, errors.Errorf("unknown stream %d", stream)
	}
	if err := device.StartCameras(config); err != nil {
		return nil, err
	}
	logger.Debugw("cameras started",
		"stream", stream.String(),
		"depth_mode", config.DepthMode.String(),
		"color_resolution", config.ColorResolution.String(),
	)
	return &Source{device: device, stream: stream, logger: logger}, nil
}

// Read pulls the next capture carrying the selected stream and converts it
// to a Go image. The release closure must be called once the image is no
// longer in use; it returns the native capture and image to the pool.
// Captures missing the selected stream are skipped.
func (s *Source) Read(ctx context.Context) (image.Image, func(), error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		capture, err := s.device.GetCapture(0)
		if err != nil {
			if !errors.Is(err, k4a.ErrCaptureTimeout) {
				return nil, nil, err
			}
			if !utils.SelectContextOrWait(ctx, pollInterval) {
				return nil, nil, ctx.Err()
			}
			continue
		}
		native, ok := s.grab(capture)
		if !ok {
			capture.Close()
			if !utils.SelectContextOrWait(ctx, pollInterval) {
				return nil, nil, ctx.Err()
			}
			continue
		}
		img, err := ConvertImage(native)
		if err != nil {
			native.Close()
			capture.Close()
			return nil, nil, err
		}
		release := func() {
			native.Close()
			capture.Close()
		}
		return img, release, nil
	}
}

func (s *Source) grab(capture *k4a.Capture) (*k4a.Image, bool) {
	switch s.stream {
	case StreamDepth:
		return capture.DepthImage()
	case StreamIR:
		return capture.IRImage()
	default:
		return capture.ColorImage()
	}
}

// Stream returns the stream this source reads.
func (s *Source) Stream() Stream {
	return s.stream
}

// Close stops the cameras and closes the device. It is safe to call more
// than once.
func (s *Source) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.device.StopCameras()
		s.device.Close()
		s.logger.Debugw("source closed", "stream", s.stream.String())
	})
	return nil
}
