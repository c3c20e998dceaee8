// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/pdfpages/internal/container"
	"github.com/pdiddy/pdfpages/pkg/types"
)

const imagePoppler = "minidocks/poppler:latest"

// PopplerRenderer renders pages by piping the PDF through pdftoppm in a
// container, one page per invocation. Page counting (and rejection of
// unreadable files) happens locally with pdfcpu so a corrupt PDF fails at
// Open rather than halfway through the page loop.
type PopplerRenderer struct {
	runtime   container.Runtime
	image     string
	pageCount func(path string) (int, error)
}

// NewPopplerRenderer creates a renderer that uses rt to run the poppler image.
// A missing image is pulled once before returning.
func NewPopplerRenderer(rt container.Runtime) (*PopplerRenderer, error) {
	if err := rt.ImageExists(imagePoppler); err != nil {
		if pullErr := rt.Pull(imagePoppler); pullErr != nil {
			return nil, fmt.Errorf("poppler image not available in %s: %w", rt.Name(), pullErr)
		}
	}
	return &PopplerRenderer{
		runtime:   rt,
		image:     imagePoppler,
		pageCount: api.PageCountFile,
	}, nil
}

func (r *PopplerRenderer) Name() string { return string(types.BackendPoppler) }

// Open counts the pages of the PDF at path and buffers its bytes for the
// per-page container runs.
func (r *PopplerRenderer) Open(path string) (Document, error) {
	n, err := r.pageCount(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PDF %s: %w", path, err)
	}
	return &popplerDocument{renderer: r, path: path, data: data, pages: n}, nil
}

type popplerDocument struct {
	renderer *PopplerRenderer
	path     string
	data     []byte
	pages    int
}

func (d *popplerDocument) NumPage() int { return d.pages }

func (d *popplerDocument) RenderPage(index int, scale float64) (image.Image, error) {
	if index < 0 || index >= d.pages {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", index+1, d.pages)
	}
	page := strconv.Itoa(index + 1)
	args := []string{
		"pdftoppm", "-png",
		"-r", strconv.FormatFloat(DPI(scale), 'f', -1, 64),
		"-f", page, "-l", page,
		"-singlefile",
		"-",
	}

	var out bytes.Buffer
	if err := d.renderer.runtime.Run(d.renderer.image, args, bytes.NewReader(d.data), &out); err != nil {
		return nil, fmt.Errorf("rendering page %d of %s: %w", index+1, d.path, err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("decoding page %d of %s: %w", index+1, d.path, err)
	}
	return img, nil
}

func (d *popplerDocument) Close() error {
	d.data = nil
	return nil
}
