package fake

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"

	"go.viam.com/utils"

	"go.viam.com/k4a"
)

// Device is one simulated attached device. Configure it through its setters
// and feed it frames with PushFrame; the streaming side is driven through
// the root package against the owning SDK.
type Device struct {
	sdk *SDK

	serial      string
	syncIn      bool
	syncOut     bool
	calibration *k4a.Calibration

	open      bool
	handle    k4a.DeviceHandle
	streaming bool
	config    k4a.DeviceConfiguration
	pending   []k4a.CaptureHandle
	notify    chan struct{}
}

// FrameFill selects the pixel values written into a pushed frame.
type FrameFill struct {
	// DepthMM is written to every depth pixel, in millimeters.
	DepthMM uint16
	// IR is written to every infrared pixel.
	IR uint16
	// Color is written to every color pixel. MJPEG streams carry a real
	// JPEG encoding of a solid image of this color.
	Color color.RGBA
}

// wakeLocked wakes every waiter blocked on this device's queue.
func (d *Device) wakeLocked() {
	close(d.notify)
	d.notify = make(chan struct{})
}

// SetSyncJack sets the reported cable state of the sync in and sync out
// jacks.
func (d *Device) SetSyncJack(in, out bool) {
	d.sdk.mu.Lock()
	defer d.sdk.mu.Unlock()
	d.syncIn = in
	d.syncOut = out
}

// SetCalibration overrides the calibration fixture reported for every mode
// pairing. The requested depth mode and color resolution are still stamped
// onto the reported value.
func (d *Device) SetCalibration(cal k4a.Calibration) {
	d.sdk.mu.Lock()
	defer d.sdk.mu.Unlock()
	d.calibration = &cal
}

// Streaming reports whether the cameras are currently started.
func (d *Device) Streaming() bool {
	d.sdk.mu.Lock()
	defer d.sdk.mu.Unlock()
	return d.streaming
}

// Config returns the configuration the cameras were last started with.
func (d *Device) Config() k4a.DeviceConfiguration {
	d.sdk.mu.Lock()
	defer d.sdk.mu.Unlock()
	return d.config
}

// PendingFrames reports how many pushed frames await delivery.
func (d *Device) PendingFrames() int {
	d.sdk.mu.Lock()
	defer d.sdk.mu.Unlock()
	return len(d.pending)
}

// PushFrame queues one capture built from the active streaming
// configuration: a depth image and an infrared image when the depth camera
// is on (infrared only for passive IR mode) and a color image when the
// color camera is on. It reports whether a frame was queued; pushes on a
// device that is not streaming are dropped.
func (d *Device) PushFrame(fill FrameFill) bool {
	s := d.sdk
	s.mu.Lock()
	defer s.mu.Unlock()
	if !d.open || !d.streaming {
		return false
	}
	entry := &captureEntry{}
	if res, ok := d.config.DepthMode.Resolution(); ok {
		if d.config.DepthMode != k4a.DepthModePassiveIR {
			entry.depth = s.newUint16ImageLocked(k4a.FormatDepth16, res, fill.DepthMM)
		}
		entry.ir = s.newUint16ImageLocked(k4a.FormatIR16, res, fill.IR)
	}
	if res, ok := d.config.ColorResolution.Resolution(); ok {
		entry.color = s.newColorImageLocked(d.config.ColorFormat, res, fill.Color)
	}
	handle := k4a.CaptureHandle(s.allocHandleLocked())
	entry.refs = utils.NewRefCountedValue(handle)
	entry.refs.Ref()
	s.captures[handle] = entry
	d.pending = append(d.pending, handle)
	d.wakeLocked()
	return true
}

func (s *SDK) newUint16ImageLocked(format k4a.ImageFormat, res k4a.Resolution, value uint16) k4a.ImageHandle {
	stride := 2 * res.Width
	buf := make([]byte, int(stride)*int(res.Height))
	if value != 0 {
		for i := 0; i < len(buf); i += 2 {
			binary.LittleEndian.PutUint16(buf[i:], value)
		}
	}
	return s.insertImageLocked(format, res.Width, res.Height, stride, buf)
}

func (s *SDK) newColorImageLocked(format k4a.ImageFormat, res k4a.Resolution, c color.RGBA) k4a.ImageHandle {
	switch format {
	case k4a.FormatColorBGRA32:
		stride := 4 * res.Width
		buf := make([]byte, int(stride)*int(res.Height))
		for i := 0; i < len(buf); i += 4 {
			buf[i] = c.B
			buf[i+1] = c.G
			buf[i+2] = c.R
			buf[i+3] = c.A
		}
		return s.insertImageLocked(format, res.Width, res.Height, stride, buf)
	case k4a.FormatColorNV12:
		y, cb, cr := color.RGBToYCbCr(c.R, c.G, c.B)
		stride := res.Width
		luma := int(stride) * int(res.Height)
		buf := make([]byte, luma*3/2)
		for i := 0; i < luma; i++ {
			buf[i] = y
		}
		for i := luma; i < len(buf); i += 2 {
			buf[i] = cb
			buf[i+1] = cr
		}
		return s.insertImageLocked(format, res.Width, res.Height, stride, buf)
	case k4a.FormatColorYUY2:
		y, cb, cr := color.RGBToYCbCr(c.R, c.G, c.B)
		stride := 2 * res.Width
		buf := make([]byte, int(stride)*int(res.Height))
		for i := 0; i < len(buf); i += 4 {
			buf[i] = y
			buf[i+1] = cb
			buf[i+2] = y
			buf[i+3] = cr
		}
		return s.insertImageLocked(format, res.Width, res.Height, stride, buf)
	case k4a.FormatColorMJPEG:
		img := image.NewRGBA(image.Rect(0, 0, int(res.Width), int(res.Height)))
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 0xff
		}
		var out bytes.Buffer
		if err := jpeg.Encode(&out, img, nil); err != nil {
			panic("fake: jpeg encode: " + err.Error())
		}
		// compressed frames report no stride
		return s.insertImageLocked(format, res.Width, res.Height, 0, out.Bytes())
	default:
		panic("fake: unsupported color format " + format.String())
	}
}
