package rotation

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Rotate turns img clockwise by a and re-encodes it with the same MIME type
// and filename. Deg0 returns img as is.
func Rotate(img Image, a Angle) (Image, error) {
	if !a.Valid() {
		return Image{}, fmt.Errorf("%w: %d", ErrInvalidAngle, int(a))
	}
	if a == Deg0 {
		return img, nil
	}

	src, decodedMIME, err := decode(img)
	if err != nil {
		return Image{}, err
	}

	mimeType := normalizeMIME(img.MIMEType)
	if mimeType == "" {
		mimeType = decodedMIME
	}

	dst := render(src, a)

	data, err := encode(mimeType, dst)
	if err != nil {
		return Image{}, err
	}

	b := dst.Bounds()
	return Image{
		Data:     data,
		MIMEType: mimeType,
		Filename: img.Filename,
		Width:    b.Dx(),
		Height:   b.Dy(),
	}, nil
}

// render draws src rotated about its center onto a canvas sized for a.
func render(src image.Image, a Angle) xdraw.Image {
	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	minX, minY := float64(b.Min.X), float64(b.Min.Y)

	var (
		s2d  f64.Aff3
		rect image.Rectangle
	)
	switch a {
	case Deg90:
		s2d = f64.Aff3{0, -1, h + minY, 1, 0, -minX}
		rect = image.Rect(0, 0, b.Dy(), b.Dx())
	case Deg180:
		s2d = f64.Aff3{-1, 0, w + minX, 0, -1, h + minY}
		rect = image.Rect(0, 0, b.Dx(), b.Dy())
	case Deg270:
		s2d = f64.Aff3{0, 1, -minY, -1, 0, w + minX}
		rect = image.Rect(0, 0, b.Dy(), b.Dx())
	}

	dst := canvas(src, rect)
	xdraw.NearestNeighbor.Transform(dst, s2d, src, b, xdraw.Src, nil)
	return dst
}

// canvas keeps paletted and gray sources in their color model so lossless
// formats round-trip exactly.
func canvas(src image.Image, r image.Rectangle) xdraw.Image {
	switch s := src.(type) {
	case *image.Paletted:
		return image.NewPaletted(r, append(color.Palette(nil), s.Palette...))
	case *image.Gray:
		return image.NewGray(r)
	case *image.Gray16:
		return image.NewGray16(r)
	case *image.NRGBA:
		return image.NewNRGBA(r)
	case *image.NRGBA64:
		return image.NewNRGBA64(r)
	case *image.RGBA64:
		return image.NewRGBA64(r)
	default:
		return image.NewRGBA(r)
	}
}
