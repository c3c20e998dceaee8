// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RenderStatus indicates the outcome of rendering one PDF to page images.
type RenderStatus string

const (
	RenderDone   RenderStatus = "rendered"
	RenderFailed RenderStatus = "failed"
)

// DocumentResult records what happened to a single PDF during a run.
type DocumentResult struct {
	// RunID groups the results of one batch invocation.
	RunID string `json:"run_id" yaml:"run_id"`

	// PDFPath is the input file path.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// OutputDir is the per-document image directory.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Pages is the number of PNG files written. On failure it counts the
	// pages saved before the error.
	Pages int `json:"pages" yaml:"pages"`

	Status RenderStatus `json:"status" yaml:"status"`

	// Error holds the failure reason when Status is RenderFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	RenderedAt time.Time `json:"rendered_at" yaml:"rendered_at"`
}

// BatchResult holds the outcome of a batch rendering run.
type BatchResult struct {
	RunID    string
	Rendered int
	Failed   int
	Pages    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Rendered + r.Failed
}

// HasFailures reports whether any document failed to render.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}
