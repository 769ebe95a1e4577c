// Package qrcode renders the restaurant QR code: the domain name encoded at
// the highest error correction level with the logo pasted in the centre.
package qrcode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"

	qr "github.com/skip2/go-qrcode"
)

const (
	// modulePixels is the side of one QR module.
	modulePixels = 10
	logoWidth    = 100
)

// Foreground is the colour of dark modules.
var Foreground = color.RGBA{R: 3, G: 58, B: 78, A: 255}

// Renderer implements restaurant.QRRenderer.
type Renderer struct {
	logo image.Image
}

// NewRenderer loads the logo at logoPath. An empty path renders plain codes.
func NewRenderer(logoPath string) (*Renderer, error) {
	if logoPath == "" {
		return &Renderer{}, nil
	}

	f, err := os.Open(logoPath)
	if err != nil {
		return nil, fmt.Errorf("open logo: %w", err)
	}
	defer f.Close()

	logo, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return NewRendererWithLogo(logo), nil
}

// NewRendererWithLogo scales logo to the standard width once.
func NewRendererWithLogo(logo image.Image) *Renderer {
	if logo == nil {
		return &Renderer{}
	}
	return &Renderer{logo: scaleToWidth(logo, logoWidth)}
}

// Render returns the PNG encoding of content.
func (r *Renderer) Render(content string) ([]byte, error) {
	code, err := qr.New(content, qr.Highest)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	code.ForegroundColor = Foreground
	code.BackgroundColor = color.White

	base := code.Image(-modulePixels)
	canvas := image.NewRGBA(base.Bounds())
	draw.Draw(canvas, canvas.Bounds(), base, base.Bounds().Min, draw.Src)

	if r.logo != nil {
		lb := r.logo.Bounds()
		offset := image.Pt(
			(canvas.Bounds().Dx()-lb.Dx())/2,
			(canvas.Bounds().Dy()-lb.Dy())/2,
		)
		draw.Draw(canvas, lb.Sub(lb.Min).Add(offset), r.logo, lb.Min, draw.Over)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// scaleToWidth resizes img to width keeping the aspect ratio
// (nearest-neighbour).
func scaleToWidth(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return img
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		sy := b.Min.Y + y*b.Dy()/height
		for x := 0; x < width; x++ {
			sx := b.Min.X + x*b.Dx()/width
			out.Set(x, y, img.At(sx, sy))
		}
	}
	return out
}
