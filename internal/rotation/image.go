package rotation

import (
	"bytes"
	"errors"
	"image"
)

var errUnknownFormat = errors.New("unknown image format")

// Image is an encoded image together with its declared type and size.
type Image struct {
	Data     []byte
	MIMEType string
	Filename string
	Width    int
	Height   int
}

// Load inspects data and returns an Image with the detected MIME type and
// pixel dimensions. Only the header is decoded.
func Load(filename string, data []byte) (Image, error) {
	mimeType := DetectMIME(filename, data)
	if mimeType == "" {
		return Image{}, &DecodeError{Filename: filename, Err: errUnknownFormat}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, &DecodeError{Filename: filename, Err: err}
	}
	if m, ok := formatMIME[format]; ok {
		mimeType = m
	}

	return Image{
		Data:     data,
		MIMEType: mimeType,
		Filename: filename,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

func (i Image) Size() int { return len(i.Data) }
