package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	// webp decoder for image.Decode / image.DecodeConfig
	_ "golang.org/x/image/webp"
)

// SupportedExtensions is the allow-list shared by sync and rotation
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}

var (
	ErrUnsupportedDegrees = errors.New("rotation must be 90, 180 or 270 degrees")
	ErrUnsupportedFormat  = errors.New("image format cannot be encoded")
)

// Info is the result of probing encoded image bytes
type Info struct {
	Width    int
	Height   int
	Format   string // jpeg, png, gif, bmp, webp
	MimeType string
}

// Codec probes and rotates encoded images.
type Codec interface {
	Probe(data []byte) (*Info, error)
	Rotate(data []byte, degrees int, format string) ([]byte, error)
}

// Config for image processing
type Config struct {
	JPEGQuality  int  // JPEG quality 1-100 (default 92)
	WebPLossless bool // re-encode webp losslessly (default true)
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		JPEGQuality:  92,
		WebPLossless: true,
	}
}

// Processor implements Codec on top of disintegration/imaging
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	if config.JPEGQuality <= 0 || config.JPEGQuality > 100 {
		config.JPEGQuality = DefaultConfig().JPEGQuality
	}
	return &Processor{config: config}
}

// IsSupported checks the file extension against SupportedExtensions, ignoring case
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FormatForFilename maps a supported extension to its encoder name, "" otherwise
func FormatForFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".webp":
		return "webp"
	default:
		return ""
	}
}

// Probe reads dimensions and format without decoding pixel data
func (p *Processor) Probe(data []byte) (*Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("failed to decode image: invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}

	return &Info{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Format:   format,
		MimeType: mimeFromFormat(format),
	}, nil
}

// Rotate turns the image clockwise and encodes it as format, or as the
// decoded format when format is empty.
// Animated GIFs are flattened to their first frame.
func (p *Processor) Rotate(data []byte, degrees int, format string) ([]byte, error) {
	img, decoded, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if format == "" {
		format = decoded
	}

	var rotated image.Image
	switch degrees {
	case 90:
		rotated = imaging.Rotate270(img) // imaging rotates counter-clockwise
	case 180:
		rotated = imaging.Rotate180(img)
	case 270:
		rotated = imaging.Rotate90(img)
	default:
		return nil, ErrUnsupportedDegrees
	}

	out, err := p.encode(rotated, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rotated image: %w", err)
	}
	return out, nil
}

func (p *Processor) encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "jpeg":
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.config.JPEGQuality))
	case "png":
		err = imaging.Encode(&buf, img, imaging.PNG)
	case "gif":
		err = imaging.Encode(&buf, img, imaging.GIF)
	case "bmp":
		err = imaging.Encode(&buf, img, imaging.BMP)
	case "webp":
		err = webp.Encode(&buf, img, &webp.Options{Lossless: p.config.WebPLossless, Quality: float32(p.config.JPEGQuality)})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func mimeFromFormat(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}
