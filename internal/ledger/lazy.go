// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"sync"

	"github.com/pdiddy/pdfpages/pkg/types"
)

// Lazy defers opening the ledger until the first result is recorded, so a run
// that processes no documents leaves nothing on disk. A failed open is
// returned from that Record call and retried on the next.
type Lazy struct {
	path string

	mu sync.Mutex
	l  *Ledger
}

// NewLazy returns a recorder for the ledger at path. No file is touched until
// Record is called.
func NewLazy(path string) *Lazy {
	return &Lazy{path: path}
}

// Record opens the ledger if needed and appends res.
func (z *Lazy) Record(ctx context.Context, res types.DocumentResult) error {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.l == nil {
		l, err := Open(z.path)
		if err != nil {
			return err
		}
		z.l = l
	}
	return z.l.Record(ctx, res)
}

// Opened reports whether the underlying database has been created.
func (z *Lazy) Opened() bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.l != nil
}

// Close closes the ledger if it was opened.
func (z *Lazy) Close() error {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.l == nil {
		return nil
	}
	err := z.l.Close()
	z.l = nil
	return err
}
