// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"path/filepath"
)

// RenderBackend identifies the document rendering backend.
type RenderBackend string

const (
	// BackendFitz renders in-process with MuPDF.
	BackendFitz RenderBackend = "fitz"
	// BackendPoppler renders with pdftoppm inside a container.
	BackendPoppler RenderBackend = "poppler"
)

const (
	// DefaultInputDir is the directory scanned for PDFs.
	DefaultInputDir = "references"
	// DefaultScale doubles the native page resolution in both axes.
	DefaultScale = 2.0
	// DefaultLedgerPath keeps the run ledger outside the input tree.
	DefaultLedgerPath = ".pdfpages/ledger.db"
)

// DefaultOutputDir is the image root, nested under the input directory.
var DefaultOutputDir = filepath.Join(DefaultInputDir, "images")

// RenderConfig holds settings for a page-rendering batch run.
type RenderConfig struct {
	// InputDir is scanned (non-recursively) for *.pdf files. It must exist.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the image root; one subdirectory per PDF is created under it.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Scale multiplies the native page resolution in both axes (default 2).
	Scale float64 `json:"scale" yaml:"scale"`

	// Backend selects the renderer: fitz or poppler.
	Backend RenderBackend `json:"backend" yaml:"backend"`

	// LedgerPath is the SQLite run ledger. Empty disables recording.
	LedgerPath string `json:"ledger_path,omitempty" yaml:"ledger_path,omitempty"`
}

// DefaultRenderConfig returns the configuration that reproduces the fixed
// layout: references/ in, references/images/ out, 2x scale, MuPDF backend.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		InputDir:   DefaultInputDir,
		OutputDir:  DefaultOutputDir,
		Scale:      DefaultScale,
		Backend:    BackendFitz,
		LedgerPath: DefaultLedgerPath,
	}
}

// Validate reports configuration errors that would make every document fail.
func (c RenderConfig) Validate() error {
	var errs []error
	if c.InputDir == "" {
		errs = append(errs, errors.New("input directory must be set"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output directory must be set"))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %g", c.Scale))
	}
	switch c.Backend {
	case BackendFitz, BackendPoppler:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendFitz, BackendPoppler))
	}
	return errors.Join(errs...)
}
