// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render rasterizes PDF pages through a pluggable backend. A backend
// opens a document, reports its page count, and renders one page at a time at
// a resolution multiplier relative to the PDF's native 72 DPI.
package render

import (
	"fmt"
	"image"

	"github.com/pdiddy/pdfpages/internal/container"
	"github.com/pdiddy/pdfpages/pkg/types"
)

// pointsPerInch is the native PDF user-space resolution; scale 1 renders at
// this DPI.
const pointsPerInch = 72.0

// Renderer opens documents for page rasterization. MuPDF (go-fitz) and
// Poppler (pdftoppm in a container) implement this interface.
type Renderer interface {
	// Name returns the backend name ("fitz" or "poppler").
	Name() string

	// Open prepares the PDF at path for rendering. It fails for missing,
	// corrupt, or encrypted input.
	Open(path string) (Document, error)
}

// Document is an open PDF. Callers must Close it on every exit path.
type Document interface {
	// NumPage returns the number of pages.
	NumPage() int

	// RenderPage rasterizes the page at the zero-based index, scaling the
	// native resolution by scale in both axes.
	RenderPage(index int, scale float64) (image.Image, error)

	// Close releases the document.
	Close() error
}

// DPI converts a resolution multiplier into dots per inch.
func DPI(scale float64) float64 {
	return pointsPerInch * scale
}

// New builds the renderer for backend. The poppler backend needs a working
// docker or podman install with the poppler image pulled.
func New(backend types.RenderBackend) (Renderer, error) {
	switch backend {
	case types.BackendFitz:
		return NewFitzRenderer(), nil
	case types.BackendPoppler:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewPopplerRenderer(rt)
	default:
		return nil, fmt.Errorf("unknown render backend %q", backend)
	}
}
