package ports

import (
	"context"
	"io"
)

// DocumentStore persists uploaded licence documents. The store is an external
// collaborator: properties only hold the opaque reference it returns.
type DocumentStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}
