package web

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/joshvictor1024/mandelview/pkg/viewport"
)

const frameHeaderLen = 8

var ErrBadMessage = errors.New("web: malformed message")

// message is a pointer event sent by the page, in canvas pixels.
type message struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaY float64 `json:"deltaY"`
}

func (m message) event() (viewport.Event, error) {
	switch m.Type {
	case "down":
		return viewport.PointerDown{X: m.X, Y: m.Y}, nil
	case "move":
		return viewport.PointerMove{X: m.X, Y: m.Y}, nil
	case "up":
		return viewport.PointerUp{}, nil
	case "scroll":
		return viewport.Scroll{DeltaY: m.DeltaY, X: m.X, Y: m.Y}, nil
	case "reset":
		return viewport.Reset{}, nil
	}
	return nil, fmt.Errorf("%w: event type %q", ErrBadMessage, m.Type)
}

// EncodeFrame lays img out as width and height (big-endian uint32)
// followed by its rows of RGBA bytes.
func EncodeFrame(img *image.RGBA) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	buf := make([]byte, frameHeaderLen+w*h*4)
	binary.BigEndian.PutUint32(buf[0:4], uint32(w))
	binary.BigEndian.PutUint32(buf[4:8], uint32(h))
	pix := buf[frameHeaderLen:]
	for y := 0; y < h; y++ {
		i := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[y*w*4:(y+1)*w*4], img.Pix[i:i+w*4])
	}
	return buf
}

// DecodeFrame is the inverse of EncodeFrame.
func DecodeFrame(buf []byte) (*image.RGBA, error) {
	if len(buf) < frameHeaderLen {
		return nil, fmt.Errorf("%w: frame of %d bytes", ErrBadMessage, len(buf))
	}
	w := int(binary.BigEndian.Uint32(buf[0:4]))
	h := int(binary.BigEndian.Uint32(buf[4:8]))
	pix := buf[frameHeaderLen:]
	if w <= 0 || h <= 0 || len(pix) != w*h*4 {
		return nil, fmt.Errorf("%w: %dx%d frame with %d pixel bytes", ErrBadMessage, w, h, len(pix))
	}
	return &image.RGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}, nil
}
