package loaders

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type ImageLoader struct{}

// Load decodes png, jpeg, bmp, tiff and webp files. With FlipY the rows are
// reversed so the first row is the bottom of the image, as OpenGL samples.
func (il *ImageLoader) Load(path string, params interface{}) (*Resource, error) {
	flip := false
	if p, ok := params.(*ImageResourceParams); ok && p != nil {
		flip = p.FlipY
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	if flip {
		img = FlipVertical(img)
	}
	return &Resource{
		Name:     filepath.Base(path) + ":" + format,
		FullPath: path,
		Type:     ResourceTypeImage,
		DataSize: uint64(info.Size()),
		Data:     img,
	}, nil
}

func (il *ImageLoader) Unload(*Resource) error {
	return nil
}

// FlipVertical returns an RGBA copy of img upside down.
func FlipVertical(img image.Image) *image.RGBA {
	b := img.Bounds()
	src := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)

	dst := image.NewRGBA(src.Bounds())
	rowLen := src.Stride
	h := src.Rect.Dy()
	for y := 0; y < h; y++ {
		copy(dst.Pix[y*rowLen:(y+1)*rowLen], src.Pix[(h-1-y)*rowLen:(h-y)*rowLen])
	}
	return dst
}
