// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/pdfpages/pkg/types"
)

// FitzRenderer renders pages in-process with MuPDF through go-fitz.
type FitzRenderer struct{}

// NewFitzRenderer creates a MuPDF-backed renderer.
func NewFitzRenderer() *FitzRenderer {
	return &FitzRenderer{}
}

func (r *FitzRenderer) Name() string { return string(types.BackendFitz) }

// Open loads the PDF at path with MuPDF.
func (r *FitzRenderer) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &fitzDocument{doc: doc}, nil
}

type fitzDocument struct {
	doc *fitz.Document
}

func (d *fitzDocument) NumPage() int { return d.doc.NumPage() }

func (d *fitzDocument) RenderPage(index int, scale float64) (image.Image, error) {
	img, err := d.doc.ImageDPI(index, DPI(scale))
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", index+1, err)
	}
	return img, nil
}

func (d *fitzDocument) Close() error { return d.doc.Close() }
