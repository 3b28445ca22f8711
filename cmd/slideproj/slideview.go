package main

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/slideproj/internal/pixels"
)

// slideView shows the current slide over the previous one and cross-fades
// between them. It implements presenter.ImageDisplay.
type slideView struct {
	widget.BaseWidget

	bg    *canvas.Rectangle
	back  *canvas.Image
	front *canvas.Image

	onTap          func()
	onSecondaryTap func()
}

func newSlideView(onTap, onSecondaryTap func()) *slideView {
	v := &slideView{
		bg:             canvas.NewRectangle(color.Black),
		back:           newSlideImage(),
		front:          newSlideImage(),
		onTap:          onTap,
		onSecondaryTap: onSecondaryTap,
	}
	v.ExtendBaseWidget(v)
	return v
}

func newSlideImage() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	return img
}

func (v *slideView) ShowImage(img image.Image) {
	v.back.Image = v.front.Image
	v.back.Translucency = 0
	v.front.Image = img
	v.front.Translucency = 1
	v.back.Refresh()
	v.front.Refresh()
}

func (v *slideView) SetTransitionParam(t float32) {
	v.front.Translucency = 1 - float64(min(max(t, 0), 1))
	if t >= 1 && v.back.Image != nil {
		v.back.Image = nil
		v.back.Refresh()
	}
	canvas.Refresh(v.front)
}

func (v *slideView) Tapped(_ *fyne.PointEvent) {
	if v.onTap != nil {
		v.onTap()
	}
}

func (v *slideView) TappedSecondary(_ *fyne.PointEvent) {
	if v.onSecondaryTap != nil {
		v.onSecondaryTap()
	}
}

// pixelSize returns the size of the view in device pixels.
func (v *slideView) pixelSize() pixels.Rect {
	scale := float32(1)
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(v); c != nil {
			scale = c.Scale()
		}
	}
	return pixelRect(v.Size(), scale)
}

func pixelRect(size fyne.Size, scale float32) pixels.Rect {
	if scale <= 0 {
		scale = 1
	}
	return pixels.Rect{
		Width:  int(math.Round(float64(size.Width * scale))),
		Height: int(math.Round(float64(size.Height * scale))),
	}
}

func (v *slideView) CreateRenderer() fyne.WidgetRenderer {
	return &slideViewRenderer{v: v}
}

type slideViewRenderer struct {
	v *slideView
}

func (r *slideViewRenderer) Layout(s fyne.Size) {
	for _, o := range r.Objects() {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(s)
	}
}

func (r *slideViewRenderer) MinSize() fyne.Size { return fyne.NewSize(160, 120) }

func (r *slideViewRenderer) Refresh() {
	canvas.Refresh(r.v.back)
	canvas.Refresh(r.v.front)
}

func (r *slideViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.v.bg, r.v.back, r.v.front}
}

func (r *slideViewRenderer) Destroy() {}
