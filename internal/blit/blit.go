// Package blit composes a decoded image into a display frame: a straight
// copy when the geometries match, otherwise a crop (pan/zoom) followed by
// a resample through x/image, with padding around the result.
package blit

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/mward/glance/internal/playlist"
)

// PadColor fills the area not covered by the scaled image.
var PadColor = color.RGBA{R: 32, G: 32, B: 32, A: 255}

// Options controls how a frame is composed.
type Options struct {
	Aspect bool // preserve the source aspect ratio
	Zoom   int  // integer scale factor, >= 1
}

// scaler is the external resampling routine. Bilinear keeps interactive
// stepping cheap on large playlists.
var scaler xdraw.Scaler = xdraw.ApproxBiLinear

// Pad fills the whole destination with the pad color. Used while no
// image is displayable.
func Pad(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: PadColor}, image.Point{}, draw.Src)
}

// Compose renders src into dst. A nil or unready source paints the pad
// color only. The source rectangle honors pan offsets and the zoom
// factor; the destination rectangle honors the aspect option.
func Compose(dst *image.RGBA, src *playlist.Image, opts Options) {
	if src == nil || !src.Ready || src.Broken {
		Pad(dst)
		return
	}
	if len(src.Pix) != src.W*src.H*4 {
		// Corrupt result from a worker; leave the frame alone.
		return
	}

	srcImg := &image.RGBA{
		Pix:    src.Pix,
		Stride: src.W * 4,
		Rect:   image.Rect(0, 0, src.W, src.H),
	}

	srcRect := cropRect(src, opts.Zoom)
	dstRect := fitRect(dst.Bounds(), srcRect, opts.Aspect)

	// Fast path: no transform needed.
	if srcRect.Eq(srcImg.Rect) && dstRect.Eq(dst.Bounds()) && srcRect.Dx() == dstRect.Dx() && srcRect.Dy() == dstRect.Dy() {
		draw.Draw(dst, dst.Bounds(), srcImg, image.Point{}, draw.Src)
		return
	}

	Pad(dst)
	scaler.Scale(dst, dstRect, srcImg, srcRect, xdraw.Src, nil)
}

// cropRect selects the visible part of the source: the full image at
// zoom 1, or a 1/zoom window biased by the pan offsets and clamped to
// the image.
func cropRect(src *playlist.Image, zoom int) image.Rectangle {
	if zoom <= 1 {
		return image.Rect(clamp(src.PanX, 0, src.W-1), clamp(src.PanY, 0, src.H-1), src.W, src.H)
	}

	w := src.W / zoom
	h := src.H / zoom
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	x := clamp((src.W-w)/2+src.PanX, 0, src.W-w)
	y := clamp((src.H-h)/2+src.PanY, 0, src.H-h)
	return image.Rect(x, y, x+w, y+h)
}

// fitRect places the scaled image inside the destination. Without aspect
// preservation the whole destination is used; with it, the image is
// scaled to the largest fit and anchored at the origin, the rest is pad.
func fitRect(dst, src image.Rectangle, aspect bool) image.Rectangle {
	if !aspect || src.Dx() == 0 || src.Dy() == 0 {
		return dst
	}

	dw := dst.Dx()
	dh := dst.Dy()
	sw := src.Dx()
	sh := src.Dy()

	// Largest scale that fits both dimensions.
	w := dw
	h := sh * dw / sw
	if h > dh {
		h = dh
		w = sw * dh / sh
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Rect(dst.Min.X, dst.Min.Y, dst.Min.X+w, dst.Min.Y+h)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
