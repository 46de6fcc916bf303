package imageproc

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Image is an upload ready to be stored.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
}

type Processor struct {
	maxWidth  int
	maxPixels int64
}

// NewProcessor returns a Processor that downscales to maxWidth and refuses
// to decode images declaring more than maxPixels pixels. Zero disables
// either limit.
func NewProcessor(maxWidth int, maxPixels int64) *Processor {
	return &Processor{maxWidth: maxWidth, maxPixels: maxPixels}
}

// Prepare validates data and scales JPEG and PNG images down to the
// configured width. GIF and WebP are stored as uploaded.
func (p *Processor) Prepare(filename string, data []byte) (*Image, error) {
	contentType, ext, err := Sniff(filename, head(data))
	if err != nil {
		return nil, err
	}

	out := &Image{Data: data, ContentType: contentType, Ext: ext}

	var format imaging.Format
	switch ext {
	case "jpg":
		format = imaging.JPEG
	case "png":
		format = imaging.PNG
	default:
		return out, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if p.maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > p.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if p.maxWidth <= 0 || img.Bounds().Dx() <= p.maxWidth {
		return out, nil
	}

	resized := imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	out.Data = buf.Bytes()
	return out, nil
}

func head(data []byte) []byte {
	if len(data) > 512 {
		return data[:512]
	}
	return data
}
