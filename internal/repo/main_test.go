package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/discgolf-api/internal/storage"
)

// newStore returns a file store rooted in a fresh temp directory.
func newStore(t *testing.T) *storage.FileStore {
	t.Helper()
	s, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

// seed writes a raw JSON document for collection into s.
func seed(t *testing.T, s storage.Store, collection, doc string) {
	t.Helper()
	require.NoError(t, s.Save(context.Background(), collection, []byte(doc)))
}
