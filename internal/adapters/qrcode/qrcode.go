package qrcode

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"

	"usermanagement/internal/domain"
)

// DefaultSize is the edge length in pixels of rendered codes.
const DefaultSize = 256

type pngRenderer struct {
	size  int
	level qr.RecoveryLevel
}

// NewPNGRenderer returns a QRRenderer producing square PNG images of the given size.
// A non-positive size falls back to DefaultSize.
func NewPNGRenderer(size int) domain.QRRenderer {
	if size <= 0 {
		size = DefaultSize
	}
	return &pngRenderer{size: size, level: qr.Medium}
}

func (r *pngRenderer) Render(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("empty QR content")
	}
	png, err := qr.Encode(content, r.level, r.size)
	if err != nil {
		return nil, fmt.Errorf("encode QR code: %w", err)
	}
	return png, nil
}
