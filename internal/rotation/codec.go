package rotation

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// JPEGQuality is used when re-encoding JPEG images.
const JPEGQuality = 95

const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
	MIMEGIF  = "image/gif"
	MIMEBMP  = "image/bmp"
	MIMETIFF = "image/tiff"
	MIMEWebP = "image/webp"
)

// formatMIME maps image.Decode format names to MIME types.
var formatMIME = map[string]string{
	"jpeg": MIMEJPEG,
	"png":  MIMEPNG,
	"gif":  MIMEGIF,
	"bmp":  MIMEBMP,
	"tiff": MIMETIFF,
	"webp": MIMEWebP,
}

var extMIME = map[string]string{
	".jpg":  MIMEJPEG,
	".jpeg": MIMEJPEG,
	".png":  MIMEPNG,
	".gif":  MIMEGIF,
	".bmp":  MIMEBMP,
	".tif":  MIMETIFF,
	".tiff": MIMETIFF,
	".webp": MIMEWebP,
}

type encodeFunc func(w io.Writer, img image.Image) error

var encoders = map[string]encodeFunc{
	MIMEJPEG: func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	},
	MIMEPNG: png.Encode,
	MIMEGIF: func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, nil)
	},
	MIMEBMP: bmp.Encode,
	MIMETIFF: func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	},
}

// CanEncode reports whether images of the given MIME type can be rotated.
func CanEncode(mimeType string) bool {
	_, ok := encoders[normalizeMIME(mimeType)]
	return ok
}

// DetectMIME guesses the MIME type from content, then from the file
// extension. It returns an empty string for unknown input.
func DetectMIME(filename string, data []byte) string {
	if ct := http.DetectContentType(data); strings.HasPrefix(ct, "image/") {
		return normalizeMIME(ct)
	}
	if len(data) >= 4 {
		if bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")) {
			return MIMETIFF
		}
	}
	return extMIME[strings.ToLower(filepath.Ext(filename))]
}

func normalizeMIME(m string) string {
	m = strings.ToLower(strings.TrimSpace(m))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	switch m {
	case "image/jpg", "image/pjpeg":
		return MIMEJPEG
	case "image/x-ms-bmp", "image/x-bmp":
		return MIMEBMP
	}
	return m
}

// decode returns the full logical image, sized as image.DecodeConfig reports
// it. A GIF's first frame may cover only part of its screen; it is placed on
// a screen-sized canvas filled with the background color.
func decode(img Image) (image.Image, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return nil, "", &DecodeError{Filename: img.Filename, Err: err}
	}

	if format == "gif" {
		g, err := gif.DecodeAll(bytes.NewReader(img.Data))
		if err != nil {
			return nil, "", &DecodeError{Filename: img.Filename, Err: err}
		}
		if len(g.Image) == 0 {
			return nil, "", &DecodeError{Filename: img.Filename, Err: errUnknownFormat}
		}
		return onScreen(g.Image[0], g.Config.Width, g.Config.Height, g.BackgroundIndex), formatMIME[format], nil
	}

	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, "", &DecodeError{Filename: img.Filename, Err: err}
	}
	return onScreen(src, cfg.Width, cfg.Height, 0), formatMIME[format], nil
}

// onScreen draws src onto a w×h canvas anchored at the origin unless it
// already has exactly those bounds. Paletted canvases start out as bg.
func onScreen(src image.Image, w, h int, bg uint8) image.Image {
	screen := image.Rect(0, 0, w, h)
	if w <= 0 || h <= 0 || src.Bounds() == screen {
		return src
	}

	dst := canvas(src, screen)
	if p, ok := dst.(*image.Paletted); ok && int(bg) < len(p.Palette) {
		for i := range p.Pix {
			p.Pix[i] = bg
		}
	}

	r := src.Bounds().Intersect(screen)
	xdraw.Draw(dst, r, src, r.Min, xdraw.Src)
	return dst
}

func encode(mimeType string, img image.Image) ([]byte, error) {
	enc, ok := encoders[mimeType]
	if !ok {
		return nil, &EncodeError{MIMEType: mimeType, Err: ErrNoEncoder}
	}

	var buf bytes.Buffer
	if err := enc(&buf, img); err != nil {
		return nil, &EncodeError{MIMEType: mimeType, Err: err}
	}
	if buf.Len() == 0 {
		return nil, &EncodeError{MIMEType: mimeType, Err: ErrEmptyOutput}
	}
	return buf.Bytes(), nil
}
