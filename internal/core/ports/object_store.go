package ports

import (
	"context"
	"io"
)

// ObjectStore writes blobs to an external bucket and returns a publicly
// resolvable URL for each stored object.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}
