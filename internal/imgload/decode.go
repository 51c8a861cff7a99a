package imgload

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"

	// Codecs registered for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/mward/glance/internal/errors"
	"github.com/mward/glance/internal/playlist"
)

// decodeFrame reads one image from r and converts it to a tightly packed
// RGBA buffer. The memory limit bounds both the input size and the
// decoded pixel buffer; either violation is a decode failure, not a
// crash, so a hostile file cannot take the worker past its budget even
// before the rlimit bites.
func decodeFrame(r io.Reader, name string, limitMB int) (*playlist.Image, error) {
	limit := int64(limitMB) << 20

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.NewDecodeError(name, err)
	}
	if int64(len(data)) > limit {
		return nil, errors.NewDecodeError(name,
			fmt.Errorf("input exceeds %d MB limit", limitMB))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewDecodeError(name, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.NewDecodeError(name, fmt.Errorf("degenerate geometry %dx%d", cfg.Width, cfg.Height))
	}
	if int64(cfg.Width)*int64(cfg.Height)*4 > limit {
		return nil, errors.NewDecodeError(name,
			fmt.Errorf("decoded size %dx%d exceeds %d MB limit", cfg.Width, cfg.Height, limitMB))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewDecodeError(name, err)
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	return &playlist.Image{
		W:     b.Dx(),
		H:     b.Dy(),
		Pix:   rgba.Pix,
		Ready: true,
	}, nil
}
