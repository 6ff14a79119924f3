package encoder

import (
	"fmt"

	"github.com/cristianadrielbraun/qrstudio/internal/matrix"
	"rsc.io/qr"
)

// RSC encodes with rsc.io/qr.
type RSC struct{}

func (RSC) Encode(text string) (matrix.BitMatrix, error) {
	code, err := qr.Encode(text, qr.H)
	if err != nil {
		return matrix.BitMatrix{}, fmt.Errorf("failed to encode QR: %w", err)
	}
	if code.Size == 0 {
		return matrix.BitMatrix{}, fmt.Errorf("empty QR code")
	}
	return matrix.FromFunc(code.Size, func(row, col int) bool {
		return code.Black(col, row)
	})
}
