// Package scan decodes rendered QR images back to text. It is used to report
// whether a styled render still reads, never to reject one.
package scan

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ErrNotFound is returned when no QR code could be read from the image.
var ErrNotFound = errors.New("no QR code found in image")

// Result is the outcome of Verify.
type Result struct {
	Decoded bool   `json:"decoded"`
	Text    string `json:"text,omitempty"`
	Matches bool   `json:"matches"`
}

// Decode reads the first QR code in img. Transparent pixels are flattened onto
// bg before luminance is computed.
func Decode(img image.Image, bg color.Color) (string, error) {
	if bg != nil {
		img = flatten(img, bg)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("creating bitmap: %w", err)
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err == nil {
		return result.GetText(), nil
	}

	// The hybrid binarizer thresholds per block and can read thin gray seams
	// inside large finder modules as light. A single global threshold does not.
	bmp, gerr := gozxing.NewBinaryBitmap(gozxing.NewGlobalHistgramBinarizer(gozxing.NewLuminanceSourceFromImage(img)))
	if gerr != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	result, gerr = qrcode.NewQRCodeReader().Decode(bmp, hints)
	if gerr != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, gerr)
	}
	return result.GetText(), nil
}

// Verify decodes img and compares the payload with want.
func Verify(img image.Image, bg color.Color, want string) Result {
	text, err := Decode(img, bg)
	if err != nil {
		return Result{}
	}
	return Result{Decoded: true, Text: text, Matches: text == want}
}

func flatten(img image.Image, bg color.Color) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}
