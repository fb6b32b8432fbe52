package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/discgolf-api/internal/domain"
	"github.com/pkordes/discgolf-api/internal/storage"
)

// memStore is an in-memory storage.Store. saveErr, when set, fails every Save.
type memStore struct {
	docs    map[string][]byte
	saves   int
	saveErr error
}

func newMemStore() *memStore { return &memStore{docs: map[string][]byte{}} }

func (m *memStore) Load(_ context.Context, name string) ([]byte, error) {
	return m.docs[name], nil
}

func (m *memStore) Save(_ context.Context, name string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.docs[name] = append([]byte(nil), data...)
	return nil
}

var _ storage.Store = (*memStore)(nil)

func discID(d domain.Disc) int { return d.ID }

func TestCollection_EmptyStartsAtOne(t *testing.T) {
	c, err := loadCollection(context.Background(), newMemStore(), "discs", discID, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, c.len())
	assert.Equal(t, 1, c.next())
}

func TestCollection_NextIDIsMaxPlusOne(t *testing.T) {
	store := newMemStore()
	store.docs["discs"] = []byte(`[{"id":3},{"id":9},{"id":4}]`)

	c, err := loadCollection(context.Background(), store, "discs", discID, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, c.len())
	assert.Equal(t, 10, c.next())
}

func TestCollection_CorruptDocument(t *testing.T) {
	store := newMemStore()
	store.docs["discs"] = []byte(`{not json`)

	_, err := loadCollection(context.Background(), store, "discs", discID, nil)

	assert.Error(t, err)
}

func TestCollection_ListIsOrderedByID(t *testing.T) {
	store := newMemStore()
	store.docs["discs"] = []byte(`[{"id":5},{"id":1},{"id":3}]`)
	c, err := loadCollection(context.Background(), store, "discs", discID, nil)
	require.NoError(t, err)

	got := c.list(nil)

	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 3, 5}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestCollection_SaveFailureKeepsChange(t *testing.T) {
	store := newMemStore()
	c, err := loadCollection(context.Background(), store, "discs", discID, nil)
	require.NoError(t, err)

	store.saveErr = errors.New("disk full")
	_, err = c.create(context.Background(), nil, func(id int) domain.Disc { return domain.Disc{ID: id} })

	require.ErrorIs(t, err, store.saveErr)
	assert.Equal(t, 1, c.len(), "a failed save is reported, not rolled back")
	assert.Equal(t, 2, c.next())
}

func TestCollection_ModifyErrorLeavesItemUnchanged(t *testing.T) {
	store := newMemStore()
	c, err := loadCollection(context.Background(), store, "discs", discID, nil)
	require.NoError(t, err)
	_, err = c.create(context.Background(), nil, func(id int) domain.Disc { return domain.Disc{ID: id, Quantity: 2} })
	require.NoError(t, err)
	savesBefore := store.saves

	boom := errors.New("boom")
	_, err = c.modify(context.Background(), func(domain.Disc) bool { return true }, true, func(d *domain.Disc) error {
		d.Quantity = 99
		return boom
	})

	require.ErrorIs(t, err, boom)
	got, err := c.get(1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, savesBefore, store.saves)
}

func TestCollection_ModifyWithoutPersist(t *testing.T) {
	store := newMemStore()
	c, err := loadCollection(context.Background(), store, "discs", discID, nil)
	require.NoError(t, err)
	_, err = c.create(context.Background(), nil, func(id int) domain.Disc { return domain.Disc{ID: id} })
	require.NoError(t, err)
	savesBefore := store.saves

	got, err := c.modify(context.Background(), func(domain.Disc) bool { return true }, false, func(d *domain.Disc) error {
		d.Color = "Red"
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Red", got.Color)
	assert.Equal(t, savesBefore, store.saves)
}

func TestCollection_LoadError(t *testing.T) {
	_, err := loadCollection(context.Background(), failingLoad{}, "discs", discID, nil)

	assert.ErrorContains(t, err, "load discs")
}

type failingLoad struct{}

func (failingLoad) Load(context.Context, string) ([]byte, error) { return nil, errors.New("offline") }
func (failingLoad) Save(context.Context, string, []byte) error   { return nil }
