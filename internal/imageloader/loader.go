// Package imageloader reads image files from disk: pixels scaled for the
// screen, their dimensions, and the metadata used to sort and caption them.
package imageloader

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/oukeidos/slideproj/internal/apperrors"
	"github.com/oukeidos/slideproj/internal/pixels"
)

// Loader decodes image files. It is safe for concurrent use.
type Loader struct {
	// Scaler resamples images larger than the target rectangle. Nil selects
	// bilinear filtering.
	Scaler draw.Scaler
}

// NewLoader returns a Loader with the default scaler.
func NewLoader() *Loader {
	return &Loader{}
}

// Decode reads path, applies its EXIF orientation and scales it down to fit
// rect. An empty rect keeps the original size.
func (l *Loader) Decode(path string, rect pixels.Rect) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.New(apperrors.KindDecode, "cannot read image", err)
	}
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.New(apperrors.KindDecode, "cannot decode image", fmt.Errorf("%s: %w", path, err))
	}

	orientation := 1
	if format == "jpeg" || format == "tiff" {
		orientation = readOrientation(bytes.NewReader(data))
	}

	fit := rect
	if transposes(orientation) {
		fit = pixels.Rect{Width: rect.Height, Height: rect.Width}
	}
	return Orient(l.scale(src, fit), orientation), nil
}

func (l *Loader) scale(src image.Image, rect pixels.Rect) *image.NRGBA {
	size := rect.Fit(src.Bounds())
	dst := image.NewNRGBA(size)
	if size.Dx() == src.Bounds().Dx() && size.Dy() == src.Bounds().Dy() {
		draw.Draw(dst, size, src, src.Bounds().Min, draw.Src)
		return dst
	}
	scaler := l.Scaler
	if scaler == nil {
		scaler = draw.BiLinear
	}
	scaler.Scale(dst, size, src, src.Bounds(), draw.Src, nil)
	return dst
}

// Dimensions reads the size of the image at path without decoding its
// pixels.
func Dimensions(path string) (pixels.Rect, error) {
	f, err := os.Open(path)
	if err != nil {
		return pixels.Rect{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return pixels.Rect{}, fmt.Errorf("%s: %w", path, err)
	}
	return pixels.Rect{Width: cfg.Width, Height: cfg.Height}, nil
}

func readOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil || v < 1 || v > 8 {
		return 1
	}
	return v
}

// transposes reports whether an EXIF orientation swaps width and height.
func transposes(orientation int) bool {
	return orientation >= 5 && orientation <= 8
}

// Orient returns img transformed so that an image stored with the given EXIF
// orientation is displayed upright. Orientation 1, or an unknown value,
// returns img unchanged.
func Orient(img *image.NRGBA, orientation int) *image.NRGBA {
	if orientation < 2 || orientation > 8 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if transposes(orientation) {
		dst = image.NewNRGBA(image.Rect(0, 0, h, w))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var dx, dy int
			switch orientation {
			case 2:
				dx, dy = w-1-x, y
			case 3:
				dx, dy = w-1-x, h-1-y
			case 4:
				dx, dy = x, h-1-y
			case 5:
				dx, dy = y, x
			case 6:
				dx, dy = h-1-y, x
			case 7:
				dx, dy = h-1-y, w-1-x
			case 8:
				dx, dy = y, w-1-x
			}
			dst.SetNRGBA(dx, dy, img.NRGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
