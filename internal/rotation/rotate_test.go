package rotation

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

const (
	testW = 3
	testH = 2
)

func pixel(x, y int) color.NRGBA {
	return color.NRGBA{R: uint8(40 + x*60), G: uint8(30 + y*100), B: 10, A: 255}
}

func sourceImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, testW, testH))
	for y := 0; y < testH; y++ {
		for x := 0; x < testW; x++ {
			img.SetNRGBA(x, y, pixel(x, y))
		}
	}
	return img
}

func encodePNG(t *testing.T) Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, sourceImage()))
	img, err := Load("card.png", buf.Bytes())
	require.NoError(t, err)
	return img
}

func decodeImage(t *testing.T, img Image) image.Image {
	t.Helper()
	out, _, err := image.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	return out
}

func sameColor(t *testing.T, want, got color.Color, msg string) {
	t.Helper()
	wr, wg, wb, wa := want.RGBA()
	gr, gg, gb, ga := got.RGBA()
	assert.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{gr, gg, gb, ga}, msg)
}

func TestLoad(t *testing.T) {
	img := encodePNG(t)
	assert.Equal(t, MIMEPNG, img.MIMEType)
	assert.Equal(t, "card.png", img.Filename)
	assert.Equal(t, testW, img.Width)
	assert.Equal(t, testH, img.Height)
}

func TestLoad_NotAnImage(t *testing.T) {
	_, err := Load("notes.txt", []byte("hello, world"))
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "notes.txt", de.Filename)
}

func TestRotate_ZeroIsIdentity(t *testing.T) {
	img := encodePNG(t)
	orig := append([]byte(nil), img.Data...)

	out, err := Rotate(img, Deg0)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(orig, out.Data))
	assert.Equal(t, img, out)

	junk := Image{Data: []byte("not decoded at all"), MIMEType: MIMEJPEG}
	out, err = Rotate(junk, Deg0)
	require.NoError(t, err)
	assert.Equal(t, junk, out)
}

func TestRotate_PixelMapping(t *testing.T) {
	tests := []struct {
		angle Angle
		w, h  int
		src   func(dx, dy int) (int, int)
	}{
		{Deg90, testH, testW, func(dx, dy int) (int, int) { return dy, testH - 1 - dx }},
		{Deg180, testW, testH, func(dx, dy int) (int, int) { return testW - 1 - dx, testH - 1 - dy }},
		{Deg270, testH, testW, func(dx, dy int) (int, int) { return testW - 1 - dy, dx }},
	}

	for _, tt := range tests {
		t.Run(tt.angle.String(), func(t *testing.T) {
			in := encodePNG(t)
			orig := append([]byte(nil), in.Data...)

			out, err := Rotate(in, tt.angle)
			require.NoError(t, err)

			assert.Equal(t, tt.w, out.Width)
			assert.Equal(t, tt.h, out.Height)
			assert.Equal(t, MIMEPNG, out.MIMEType)
			assert.Equal(t, "card.png", out.Filename)
			assert.True(t, bytes.Equal(orig, in.Data), "input must not be mutated")

			got := decodeImage(t, out)
			require.Equal(t, image.Rect(0, 0, tt.w, tt.h), got.Bounds())
			for dy := 0; dy < tt.h; dy++ {
				for dx := 0; dx < tt.w; dx++ {
					sx, sy := tt.src(dx, dy)
					sameColor(t, pixel(sx, sy), got.At(dx, dy), "pixel mismatch")
				}
			}
		})
	}
}

func TestRotate_FourQuarterTurnsRestorePixels(t *testing.T) {
	img := encodePNG(t)
	var err error
	for i := 0; i < 4; i++ {
		img, err = Rotate(img, Deg90)
		require.NoError(t, err)
	}
	got := decodeImage(t, img)
	for y := 0; y < testH; y++ {
		for x := 0; x < testW; x++ {
			sameColor(t, pixel(x, y), got.At(x, y), "pixel mismatch")
		}
	}
}

func TestRotate_JPEGKeepsFormatAndSwapsSize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 16))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, &jpeg.Options{Quality: 80}))

	in, err := Load("scan.jpg", buf.Bytes())
	require.NoError(t, err)

	out, err := Rotate(in, Deg270)
	require.NoError(t, err)
	assert.Equal(t, MIMEJPEG, out.MIMEType)
	assert.Equal(t, "scan.jpg", out.Filename)
	assert.Equal(t, 16, out.Width)
	assert.Equal(t, 40, out.Height)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
}

func TestRotate_GIFStaysPaletted(t *testing.T) {
	pal := color.Palette{color.Black, color.White}
	src := image.NewPaletted(image.Rect(0, 0, 4, 2), pal)
	src.SetColorIndex(0, 0, 1)

	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, src, nil))
	in, err := Load("card.gif", buf.Bytes())
	require.NoError(t, err)

	out, err := Rotate(in, Deg90)
	require.NoError(t, err)
	assert.Equal(t, MIMEGIF, out.MIMEType)

	got := decodeImage(t, out)
	p, ok := got.(*image.Paletted)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 2, 4), p.Bounds())
	assert.Equal(t, uint8(1), p.ColorIndexAt(1, 0))
}

func TestRotate_GIFFrameSmallerThanScreen(t *testing.T) {
	pal := color.Palette{color.Black, color.White}
	frame := image.NewPaletted(image.Rect(2, 2, 6, 3), pal)
	frame.SetColorIndex(2, 2, 1)

	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, &gif.GIF{
		Image:  []*image.Paletted{frame},
		Delay:  []int{0},
		Config: image.Config{ColorModel: pal, Width: 10, Height: 8},
	}))
	in, err := Load("offset.gif", buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, [2]int{10, 8}, [2]int{in.Width, in.Height})

	out, err := Rotate(in, Deg90)
	require.NoError(t, err)
	assert.Equal(t, [2]int{8, 10}, [2]int{out.Width, out.Height})

	p, ok := decodeImage(t, out).(*image.Paletted)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 8, 10), p.Bounds())
	// (x, y) on the 10x8 screen lands on (8-1-y, x).
	assert.Equal(t, uint8(1), p.ColorIndexAt(5, 2))
	assert.Equal(t, uint8(0), p.ColorIndexAt(0, 0))
	assert.Equal(t, uint8(0), p.ColorIndexAt(7, 9))

	back, err := Rotate(out, Deg270)
	require.NoError(t, err)
	assert.Equal(t, [2]int{10, 8}, [2]int{back.Width, back.Height})
}

func TestRotate_BMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, sourceImage()))
	in, err := Load("card.bmp", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, MIMEBMP, in.MIMEType)

	out, err := Rotate(in, Deg180)
	require.NoError(t, err)
	assert.Equal(t, MIMEBMP, out.MIMEType)
	assert.Equal(t, testW, out.Width)
	assert.Equal(t, testH, out.Height)
}

func TestRotate_DecodeError(t *testing.T) {
	in := Image{Data: []byte("definitely not an image"), MIMEType: MIMEPNG, Filename: "x.png"}
	out, err := Rotate(in, Deg90)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "x.png", de.Filename)
	assert.Empty(t, out.Data)
}

func TestRotate_EncodeErrorWithoutEncoder(t *testing.T) {
	in := encodePNG(t)
	in.MIMEType = MIMEWebP

	out, err := Rotate(in, Deg90)

	var ee *EncodeError
	require.ErrorAs(t, err, &ee)
	require.ErrorIs(t, err, ErrNoEncoder)
	assert.Equal(t, MIMEWebP, ee.MIMEType)
	assert.Empty(t, out.Data)
	assert.False(t, CanEncode(MIMEWebP))
	assert.True(t, CanEncode("image/JPG"))
}

func TestRotate_InvalidAngle(t *testing.T) {
	_, err := Rotate(encodePNG(t), Angle(45))
	require.ErrorIs(t, err, ErrInvalidAngle)
}

func TestDetectMIME(t *testing.T) {
	assert.Equal(t, MIMETIFF, DetectMIME("x", []byte("II*\x00rest")))
	assert.Equal(t, MIMEJPEG, DetectMIME("photo.JPG", []byte("??")))
	assert.Equal(t, "", DetectMIME("notes.txt", []byte("hello")))
}
