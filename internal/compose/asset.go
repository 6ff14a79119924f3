package compose

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/nfnt/resize"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrAssetLoad wraps every failure to fetch or decode an emblem or logo.
var ErrAssetLoad = errors.New("asset load failed")

// Asset is a decoded emblem or logo, either a bitmap or a vector icon.
type Asset struct {
	bitmap image.Image
	icon   *oksvg.SvgIcon
}

// Decode sniffs data and decodes it as SVG or as any registered raster format.
// Raster images are auto-oriented from EXIF.
func Decode(data []byte) (*Asset, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrAssetLoad)
	}

	if isSVG(data) {
		icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
		if err != nil {
			return nil, fmt.Errorf("%w: svg: %v", ErrAssetLoad, err)
		}
		if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
			return nil, fmt.Errorf("%w: svg has empty viewBox", ErrAssetLoad)
		}
		return &Asset{icon: icon}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrAssetLoad)
	}
	return &Asset{bitmap: img}, nil
}

func isSVG(data []byte) bool {
	if mimetype.Detect(data).Is("image/svg+xml") {
		return true
	}
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// Size returns the native width and height.
func (a *Asset) Size() (float64, float64) {
	if a.icon != nil {
		return a.icon.ViewBox.W, a.icon.ViewBox.H
	}
	b := a.bitmap.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Render rasterizes the asset at exactly w×h pixels.
func (a *Asset) Render(w, h int) image.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if a.icon != nil {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		a.icon.SetTarget(0, 0, float64(w), float64(h))
		scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
		a.icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
		return dst
	}
	b := a.bitmap.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return a.bitmap
	}
	return resize.Resize(uint(w), uint(h), a.bitmap, resize.Lanczos3)
}

// withOpacity scales the alpha of img by opacity, which must be in [0, 1].
func withOpacity(img image.Image, opacity float64) image.Image {
	if opacity >= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	mask := image.NewUniform(colorAlpha(opacity))
	draw.DrawMask(dst, dst.Bounds(), img, b.Min, mask, image.Point{}, draw.Over)
	return dst
}
