// Package pixels holds the geometry shared by the decoder and the display,
// and the placeholder shown when an image cannot be decoded.
package pixels

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"sync"
)

// Rect is the size, in device pixels, images are decoded for.
type Rect struct {
	Width  int
	Height int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Fit returns the largest size with the aspect ratio of src that fits inside
// r. Images smaller than r are not enlarged. An empty r leaves src unchanged.
func (r Rect) Fit(src image.Rectangle) image.Rectangle {
	w, h := src.Dx(), src.Dy()
	if r.Empty() || w <= 0 || h <= 0 {
		return image.Rect(0, 0, max(w, 0), max(h, 0))
	}
	scale := math.Min(float64(r.Width)/float64(w), float64(r.Height)/float64(h))
	if scale >= 1 {
		return image.Rect(0, 0, w, h)
	}
	fw := max(1, int(math.Round(float64(w)*scale)))
	fh := max(1, int(math.Round(float64(h)*scale)))
	return image.Rect(0, 0, min(fw, r.Width), min(fh, r.Height))
}

// errorGlyphs spells "No image" one row per string. '*' is a lit pixel.
var errorGlyphs = []string{
	"                                                                                                             ",
	"  **       **                                                                                                ",
	"  ***      **                                                                                                ",
	"  ****     **                             **                                                                 ",
	"  ** **    **                             **                                                                 ",
	"  **  **   **                                                                                                ",
	"  **   **  **      *******               ***      ******* *****       ******       ******  *      *******    ",
	"  **    ** **    ***     ***              **      **    **    **           **    ***     ***    **      ***  ",
	"  **     ****    **       **              **      **    **    **     ***** **    **       **    ***********  ",
	"  **      ***    ***     ***              **      **    **    **    **    ***    ***    ****    **           ",
	"  **       **      *******              ******    **    **    **     ****** *      ****** **      ********   ",
	"                                                                                          **                 ",
	"                                                                                          **                 ",
	"                                                                                 ***     ***                 ",
	"                                                                                   *******                   ",
	"                                                                                                             ",
}

var (
	errorImageOnce sync.Once
	errorImage     *image.NRGBA
)

// ErrorImage returns the shared "No image" placeholder: opaque white glyphs on
// a transparent background. Callers must not modify it.
func ErrorImage() *image.NRGBA {
	errorImageOnce.Do(func() {
		errorImage = renderGlyphs(errorGlyphs)
	})
	return errorImage
}

// IsErrorImage reports whether img is the placeholder returned by ErrorImage.
func IsErrorImage(img image.Image) bool {
	p, ok := img.(*image.NRGBA)
	return ok && p == ErrorImage()
}

func renderGlyphs(rows []string) *image.NRGBA {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, len(rows)))
	lit := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '*' {
				img.SetNRGBA(x, y, lit)
			}
		}
	}
	return img
}

// GlyphText returns the placeholder bitmap as text, for diagnostics.
func GlyphText() string {
	return strings.Join(errorGlyphs, "\n")
}
