package renderer

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/spaghettifunk/anima-gl/engine/core"
)

/** @brief A 2D RGBA texture living on the GPU. */
type Texture struct {
	noCopy noCopy

	name   string
	width  int32
	height int32
	device Device
	handle Handle
}

// NewTexture converts img to RGBA and uploads it.
func NewTexture(device Device, name string, img image.Image) (*Texture, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != rgba.Rect.Dx()*4 || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	w, h := int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy())
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("texture %q has no pixels: %w", name, ErrEmptyBuffer)
	}
	handle, err := device.CreateTexture(w, h, rgba.Pix)
	if err != nil {
		core.LogError("failed to create texture %q: %s", name, err)
		return nil, err
	}
	return &Texture{name: name, width: w, height: h, device: device, handle: handle}, nil
}

func (t *Texture) Name() string   { return t.name }
func (t *Texture) Width() int32   { return t.width }
func (t *Texture) Height() int32  { return t.height }
func (t *Texture) Handle() Handle { return t.handle }

// Activate binds the texture to the given texture unit.
func (t *Texture) Activate(unit uint32) {
	t.device.ActiveTexture(unit)
	t.device.BindTexture(t.handle)
}

func (t *Texture) Destroy() {
	if t.handle == 0 {
		return
	}
	t.device.DeleteTexture(t.handle)
	t.handle = 0
}
