package qrcode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRender_PlainCode(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	data, err := r.Render("dastarkhan.uz")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, b.Dx(), b.Dy())
	assert.Zero(t, b.Dx()%modulePixels)

	// the quiet zone is white
	cr, cg, cb, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{cr, cg, cb})
}

func TestRender_LogoInCentre(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	r := NewRendererWithLogo(solid(400, 200, red))

	data, err := r.Render("dastarkhan.uz")
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	b := img.Bounds()
	cr, cg, cb, _ := img.At(b.Dx()/2, b.Dy()/2).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{cr, cg, cb})

	// the 400x200 logo is scaled to 100x50, so 30px above centre is outside it
	cr, cg, cb, _ = img.At(b.Dx()/2, b.Dy()/2-30).RGBA()
	assert.NotEqual(t, [3]uint32{0xffff, 0, 0}, [3]uint32{cr, cg, cb})
}

func TestScaleToWidth(t *testing.T) {
	out := scaleToWidth(solid(300, 150, color.Black), 100)
	assert.Equal(t, image.Rect(0, 0, 100, 50), out.Bounds())
}
