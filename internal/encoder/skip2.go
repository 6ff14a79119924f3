package encoder

import (
	"fmt"

	"github.com/cristianadrielbraun/qrstudio/internal/matrix"
	"github.com/skip2/go-qrcode"
)

// Skip2 encodes with github.com/skip2/go-qrcode.
type Skip2 struct{}

func (Skip2) Encode(text string) (matrix.BitMatrix, error) {
	qr, err := qrcode.New(text, qrcode.Highest)
	if err != nil {
		return matrix.BitMatrix{}, fmt.Errorf("failed to create QR code: %w", err)
	}
	// Quiet zone is added by the rasterizer.
	qr.DisableBorder = true
	return matrix.New(qr.Bitmap())
}
