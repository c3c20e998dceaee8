// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert renders every PDF found directly inside an input directory
// into one PNG per page, written to a per-document subdirectory of an image
// root. Failures are isolated per document: they are logged and the batch
// moves on to the next file.
package convert

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/pdfpages/internal/render"
	"github.com/pdiddy/pdfpages/pkg/types"
)

const (
	// pdfPattern matches input documents. Matching is case-sensitive.
	pdfPattern = "*.pdf"
	// pageNameFormat names page images by 1-based page number.
	pageNameFormat = "page_%03d.png"
)

// Recorder receives the outcome of each processed document. The run ledger
// implements it; a nil Recorder disables recording.
type Recorder interface {
	Record(ctx context.Context, res types.DocumentResult) error
}

// Discover returns the PDF files directly inside dir, in directory order.
// Subdirectories are not searched. Directories whose names end in .pdf and
// hidden files (such as macOS "._name.pdf" resource forks) are skipped.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var pdfs []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if ok, _ := filepath.Match(pdfPattern, entry.Name()); ok {
			pdfs = append(pdfs, filepath.Join(dir, entry.Name()))
		}
	}
	return pdfs, nil
}

// OutputDir returns the image directory for pdfPath: the PDF's base name,
// extension stripped, under root.
func OutputDir(root, pdfPath string) string {
	base := filepath.Base(pdfPath)
	return filepath.Join(root, strings.TrimSuffix(base, filepath.Ext(base)))
}

// PageName returns the file name for the page at the zero-based index.
func PageName(index int) string {
	return fmt.Sprintf(pageNameFormat, index+1)
}

// Run renders every PDF in cfg.InputDir with r. Nothing is returned as an
// error: a missing input directory ends the run early, and per-document
// failures are logged and counted. The image root is created whenever the
// input directory exists, even if it holds no PDFs.
func Run(ctx context.Context, cfg types.RenderConfig, r render.Renderer, rec Recorder, log *slog.Logger) types.BatchResult {
	result := types.BatchResult{RunID: uuid.NewString()}
	log = log.With("run_id", result.RunID)

	info, err := os.Stat(cfg.InputDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Error("Input directory does not exist", "dir", cfg.InputDir)
		return result
	case err != nil:
		log.Error("Cannot read input directory", "dir", cfg.InputDir, "error", err)
		return result
	case !info.IsDir():
		log.Error("Input path is not a directory", "dir", cfg.InputDir)
		return result
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("Cannot create image directory", "dir", cfg.OutputDir, "error", err)
		return result
	}

	pdfs, err := Discover(cfg.InputDir)
	if err != nil {
		log.Error("Cannot list input directory", "dir", cfg.InputDir, "error", err)
		return result
	}
	if len(pdfs) == 0 {
		log.Info("No PDF files found", "dir", cfg.InputDir)
		return result
	}
	log.Info("Found PDF files", "count", len(pdfs), "dir", cfg.InputDir, "backend", r.Name())

	warnCollisions(pdfs, log)

	for i, pdfPath := range pdfs {
		if err := ctx.Err(); err != nil {
			log.Warn("Run cancelled", "remaining", len(pdfs)-i, "error", err)
			break
		}

		res := RenderDocument(r, pdfPath, cfg.OutputDir, cfg.Scale, log)
		res.RunID = result.RunID

		result.Pages += res.Pages
		if res.Status == types.RenderDone {
			result.Rendered++
		} else {
			result.Failed++
		}

		if rec != nil {
			if err := rec.Record(ctx, res); err != nil {
				log.Warn("Recording result failed", "file", filepath.Base(pdfPath), "error", err)
			}
		}
	}

	log.Info("Batch complete",
		"rendered", result.Rendered, "failed", result.Failed, "pages", result.Pages)
	return result
}

// RenderDocument renders every page of one PDF into its image directory under
// outputRoot. A failure is logged with the file name and cause and reported
// in the returned result; pages written before the failure stay on disk.
func RenderDocument(r render.Renderer, pdfPath, outputRoot string, scale float64, log *slog.Logger) types.DocumentResult {
	name := filepath.Base(pdfPath)
	res := types.DocumentResult{
		PDFPath:   pdfPath,
		OutputDir: OutputDir(outputRoot, pdfPath),
	}

	log.Info("Processing document", "file", name)

	pages, err := renderPages(r, pdfPath, res.OutputDir, scale, log)
	res.Pages = pages
	res.RenderedAt = time.Now().UTC()
	if err != nil {
		log.Error("Failed to process document", "file", name, "error", err)
		res.Status = types.RenderFailed
		res.Error = err.Error()
		return res
	}

	log.Info("Saved pages", "file", name, "pages", pages, "dir", res.OutputDir)
	res.Status = types.RenderDone
	return res
}

// renderPages writes one PNG per page and returns how many were saved. The
// document is closed on every path.
func renderPages(r render.Renderer, pdfPath, outDir string, scale float64, log *slog.Logger) (int, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	doc, err := r.Open(pdfPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := doc.Close(); err != nil {
			log.Warn("Closing document failed", "file", filepath.Base(pdfPath), "error", err)
		}
	}()

	n := doc.NumPage()
	for i := 0; i < n; i++ {
		img, err := doc.RenderPage(i, scale)
		if err != nil {
			return i, err
		}
		if err := savePNG(filepath.Join(outDir, PageName(i)), img); err != nil {
			return i, err
		}
	}
	return n, nil
}

// savePNG encodes img to path, replacing any existing file.
func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// warnCollisions logs PDFs whose output directories would coincide on a
// case-insensitive filesystem. Their pages are written to the same place.
func warnCollisions(pdfs []string, log *slog.Logger) {
	seen := make(map[string]string, len(pdfs))
	for _, p := range pdfs {
		key := strings.ToLower(OutputDir("", p))
		if first, ok := seen[key]; ok {
			log.Warn("PDFs share an output directory",
				"file", filepath.Base(p), "other", filepath.Base(first))
			continue
		}
		seen[key] = p
	}
}
