// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRenderConfig(t *testing.T) {
	cfg := DefaultRenderConfig()

	assert.Equal(t, "references", cfg.InputDir)
	assert.Equal(t, filepath.Join("references", "images"), cfg.OutputDir)
	assert.Equal(t, 2.0, cfg.Scale)
	assert.Equal(t, BackendFitz, cfg.Backend)
	require.NoError(t, cfg.Validate())
}

func TestRenderConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RenderConfig)
		errMsg string
	}{
		{
			name:   "missing input dir",
			mutate: func(c *RenderConfig) { c.InputDir = "" },
			errMsg: "input directory",
		},
		{
			name:   "missing output dir",
			mutate: func(c *RenderConfig) { c.OutputDir = "" },
			errMsg: "output directory",
		},
		{
			name:   "zero scale",
			mutate: func(c *RenderConfig) { c.Scale = 0 },
			errMsg: "scale must be positive",
		},
		{
			name:   "unknown backend",
			mutate: func(c *RenderConfig) { c.Backend = "ghostscript" },
			errMsg: `unknown backend "ghostscript"`,
		},
		{
			name:   "poppler backend accepted",
			mutate: func(c *RenderConfig) { c.Backend = BackendPoppler },
		},
		{
			name:   "ledger may be disabled",
			mutate: func(c *RenderConfig) { c.LedgerPath = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRenderConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestBatchResult(t *testing.T) {
	r := BatchResult{Rendered: 2, Failed: 1, Pages: 7}
	assert.Equal(t, 3, r.Total())
	assert.True(t, r.HasFailures())
	assert.False(t, BatchResult{Rendered: 1}.HasFailures())
}
