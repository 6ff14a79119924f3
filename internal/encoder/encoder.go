// Package encoder turns text into a finished QR module grid at error
// correction level H. Mask and version selection belong to the backend.
package encoder

import (
	"fmt"
	"strings"

	"github.com/cristianadrielbraun/qrstudio/internal/matrix"
)

// Encoder produces a BitMatrix for text at error correction level H.
type Encoder interface {
	Encode(text string) (matrix.BitMatrix, error)
}

// Backend names accepted by New.
const (
	BackendYeqown = "yeqown"
	BackendSkip2  = "skip2"
	BackendRSC    = "rsc"
)

// New returns the encoder registered under name. An empty name selects yeqown.
func New(name string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendYeqown:
		return Yeqown{}, nil
	case BackendSkip2:
		return Skip2{}, nil
	case BackendRSC:
		return RSC{}, nil
	default:
		return nil, fmt.Errorf("unknown encoder backend %q", name)
	}
}
