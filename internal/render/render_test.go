// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfpages/internal/testpdf"
	"github.com/pdiddy/pdfpages/pkg/types"
)

func TestDPI(t *testing.T) {
	tests := []struct {
		scale float64
		want  float64
	}{
		{scale: 1, want: 72},
		{scale: 2, want: 144},
		{scale: 0.5, want: 36},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DPI(tt.scale), "DPI(%g)", tt.scale)
	}
}

func TestNew(t *testing.T) {
	r, err := New(types.BackendFitz)
	require.NoError(t, err)
	assert.Equal(t, "fitz", r.Name())

	_, err = New("ghostscript")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown render backend "ghostscript"`)
}

func TestFitzRenderer_Open(t *testing.T) {
	dir := t.TempDir()
	path := testpdf.Write(t, dir, "two-pages.pdf", 2, 100, 50)

	doc, err := NewFitzRenderer().Open(path)
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, 2, doc.NumPage())
}

func TestFitzRenderer_RenderPageScales(t *testing.T) {
	dir := t.TempDir()
	path := testpdf.Write(t, dir, "page.pdf", 1, 100, 50)

	doc, err := NewFitzRenderer().Open(path)
	require.NoError(t, err)
	defer doc.Close()

	base, err := doc.RenderPage(0, 1)
	require.NoError(t, err)
	doubled, err := doc.RenderPage(0, 2)
	require.NoError(t, err)

	assert.InDelta(t, 100, base.Bounds().Dx(), 1)
	assert.InDelta(t, 50, base.Bounds().Dy(), 1)
	assert.InDelta(t, 200, doubled.Bounds().Dx(), 1)
	assert.InDelta(t, 100, doubled.Bounds().Dy(), 1)
}

func TestFitzRenderer_OpenCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	_, err := NewFitzRenderer().Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.pdf")
}

func TestFitzRenderer_OpenMissing(t *testing.T) {
	_, err := NewFitzRenderer().Open(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening PDF")
}
