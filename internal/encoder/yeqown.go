package encoder

import (
	"fmt"

	"github.com/cristianadrielbraun/qrstudio/internal/matrix"
	"github.com/yeqown/go-qrcode/v2"
)

// Yeqown encodes with github.com/yeqown/go-qrcode.
type Yeqown struct{}

func (Yeqown) Encode(text string) (matrix.BitMatrix, error) {
	qrc, err := qrcode.NewWith(text,
		qrcode.WithEncodingMode(qrcode.EncModeByte),
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest),
	)
	if err != nil {
		return matrix.BitMatrix{}, fmt.Errorf("failed to create QR code: %w", err)
	}

	w := &matrixCapture{}
	if err := qrc.Save(w); err != nil {
		return matrix.BitMatrix{}, fmt.Errorf("failed to capture QR matrix: %w", err)
	}
	return matrix.New(w.rows)
}

// matrixCapture is a qrcode.Writer that keeps the raw module grid instead of
// writing an image.
type matrixCapture struct {
	rows [][]bool
}

func (w *matrixCapture) Write(mat qrcode.Matrix) error {
	rows := make([][]bool, mat.Height())
	for i := range rows {
		rows[i] = make([]bool, mat.Width())
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		rows[y][x] = v.IsSet()
	})
	w.rows = rows
	return nil
}

func (w *matrixCapture) Close() error { return nil }
