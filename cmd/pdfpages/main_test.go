package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfpages/pkg/types"
)

func init() {
	color.NoColor = true
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantOut string
		wantErr string
	}{
		{name: "text info", level: "info", format: "text", wantOut: `level=INFO msg="Processing document"`},
		{name: "json", level: "INFO", format: "json", wantOut: `"msg":"Processing document"`},
		{name: "debug enabled", level: "debug", format: "", wantOut: "level=INFO"},
		{name: "bad level", level: "loud", format: "text", wantErr: "invalid log level"},
		{name: "bad format", level: "info", format: "xml", wantErr: "invalid log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := newLogger(&buf, tt.level, tt.format)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			log.Info("Processing document", "file", "a.pdf")
			assert.Contains(t, buf.String(), tt.wantOut)
			out := buf.String()
			assert.True(t, strings.Contains(out, "time=") || strings.Contains(out, `"time":`), "lines are timestamped: %s", out)
		})
	}
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "error", "text")
	require.NoError(t, err)

	log.Info("Processing document")
	log.Error("Failed to process document")

	assert.NotContains(t, buf.String(), "Processing document")
	assert.Contains(t, buf.String(), "Failed to process document")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, types.BatchResult{Rendered: 2, Failed: 1, Pages: 9})
	assert.Contains(t, buf.String(), "Batch summary: 2 rendered, 1 failed, 9 pages (total: 3)")

	buf.Reset()
	printSummary(&buf, types.BatchResult{})
	assert.Empty(t, buf.String())
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printStatus(&buf, nil))
	assert.Equal(t, "No documents recorded.\n", buf.String())

	buf.Reset()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, printStatus(&buf, []types.DocumentResult{
		{PDFPath: "references/a.pdf", OutputDir: "references/images/a", Pages: 4, Status: types.RenderDone, RenderedAt: at},
		{PDFPath: "references/b.pdf", OutputDir: "references/images/b", Status: types.RenderFailed, Error: "cannot open document", RenderedAt: at},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "PDF"))
	assert.Contains(t, lines[1], "references/a.pdf")
	assert.True(t, strings.HasSuffix(lines[1], "rendered"))
	assert.Contains(t, lines[2], "failed: cannot open document")
}
