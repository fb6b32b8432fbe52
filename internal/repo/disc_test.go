package repo_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/discgolf-api/internal/domain"
	"github.com/pkordes/discgolf-api/internal/repo"
	"github.com/pkordes/discgolf-api/internal/storage"
)

const discsDoc = `[
	{"id":1,"color":"Blue","weight":175,"type":"Putter","price":10.0,"quantity":5},
	{"id":2,"color":"Red","weight":170,"type":"Driver","price":12.5,"quantity":2},
	{"id":3,"color":"Light Blue","weight":165,"type":"Midrange","price":14.0,"quantity":1}
]`

func newDiscRepo(t *testing.T) (repo.DiscRepo, storage.Store) {
	t.Helper()
	s := newStore(t)
	seed(t, s, storage.CollectionDiscs, discsDoc)
	r, err := repo.NewDiscRepo(context.Background(), s)
	require.NoError(t, err)
	return r, s
}

func ids(discs []domain.Disc) []int {
	out := make([]int, 0, len(discs))
	for _, d := range discs {
		out = append(out, d.ID)
	}
	return out
}

func TestDiscRepo_EmptyStore(t *testing.T) {
	r, err := repo.NewDiscRepo(context.Background(), newStore(t))
	require.NoError(t, err)

	got, err := r.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDiscRepo_Search(t *testing.T) {
	r, _ := newDiscRepo(t)
	ctx := context.Background()

	tests := []struct {
		name string
		term string
		mode domain.SearchMode
		want []int
	}{
		{"all ignores term", "zzz", domain.SearchAll, []int{1, 2, 3}},
		{"type", "put", domain.SearchType, []int{1}},
		{"color substring any case", "BLUE", domain.SearchColor, []int{1, 3}},
		{"weight", "17", domain.SearchWeight, []int{1, 2}},
		{"price keeps fraction", "10.0", domain.SearchPrice, []int{1}},
		{"no match", "green", domain.SearchColor, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Search(ctx, tt.term, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestDiscRepo_CreateAssignsNextID(t *testing.T) {
	r, _ := newDiscRepo(t)

	got, err := r.Create(context.Background(), domain.Disc{ID: 77, Color: "Green", Type: "Driver", Quantity: 3})

	require.NoError(t, err)
	assert.Equal(t, 4, got.ID, "client supplied id is ignored")
}

func TestDiscRepo_PersistsAcrossReload(t *testing.T) {
	r, s := newDiscRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, domain.Disc{Color: "Green", Weight: 174, Type: "Driver", Price: 15, Quantity: 3})
	require.NoError(t, err)
	require.NoError(t, r.Delete(ctx, 2))

	reloaded, err := repo.NewDiscRepo(ctx, s)
	require.NoError(t, err)

	got, err := reloaded.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4}, ids(got))

	again, err := reloaded.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, again)
}

func TestDiscRepo_UpdateAndDeleteNotFound(t *testing.T) {
	r, _ := newDiscRepo(t)
	ctx := context.Background()

	_, err := r.Update(ctx, domain.Disc{ID: 42})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = r.Delete(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiscRepo_Update(t *testing.T) {
	r, _ := newDiscRepo(t)
	ctx := context.Background()

	_, err := r.Update(ctx, domain.Disc{ID: 2, Color: "Pink", Weight: 171, Type: "Driver", Price: 13, Quantity: 9})
	require.NoError(t, err)

	got, err := r.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Pink", got.Color)
	assert.Equal(t, 9, got.Quantity)
}

func TestDiscRepo_WithdrawPartial(t *testing.T) {
	r, _ := newDiscRepo(t)
	ctx := context.Background()

	got, err := r.Withdraw(ctx, 1, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity, "returned disc carries the purchased quantity")
	stored, err := r.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Quantity)
}

func TestDiscRepo_WithdrawMoreThanStockDeletes(t *testing.T) {
	r, _ := newDiscRepo(t)
	ctx := context.Background()

	got, err := r.Withdraw(ctx, 2, 5)

	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	_, err = r.GetByID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiscRepo_WithdrawMissing(t *testing.T) {
	r, _ := newDiscRepo(t)

	_, err := r.Withdraw(context.Background(), 99, 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiscRepo_ConcurrentWithdrawNeverOversells(t *testing.T) {
	r, _ := newDiscRepo(t)
	ctx := context.Background()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := r.Withdraw(ctx, 1, 1)
			if err != nil {
				return
			}
			mu.Lock()
			total += d.Quantity
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, total)
	_, err := r.GetByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
