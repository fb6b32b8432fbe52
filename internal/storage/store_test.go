package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/discgolf-api/internal/storage"
)

// runStoreContract exercises the behaviour every driver must share.
func runStoreContract(t *testing.T, s storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing collection is empty", func(t *testing.T) {
		data, err := s.Load(ctx, "never_saved")
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		doc := []byte(`[{"id":1,"color":"Blue"}]`)
		require.NoError(t, s.Save(ctx, storage.CollectionDiscs, doc))

		got, err := s.Load(ctx, storage.CollectionDiscs)
		require.NoError(t, err)
		assert.JSONEq(t, string(doc), string(got))
	})

	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, storage.CollectionCarts, []byte(`[{"id":1}]`)))
		require.NoError(t, s.Save(ctx, storage.CollectionCarts, []byte(`[]`)))

		got, err := s.Load(ctx, storage.CollectionCarts)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(got))
	})

	t.Run("collections are independent", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, storage.CollectionUsers, []byte(`[{"id":7}]`)))
		require.NoError(t, s.Save(ctx, storage.CollectionLessons, []byte(`[{"id":8}]`)))

		users, err := s.Load(ctx, storage.CollectionUsers)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":7}]`, string(users))
	})

	t.Run("invalid name rejected", func(t *testing.T) {
		_, err := s.Load(ctx, "../etc/passwd")
		assert.Error(t, err)
		assert.Error(t, s.Save(ctx, "", []byte(`[]`)))
	})
}
