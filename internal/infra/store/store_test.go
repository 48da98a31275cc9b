package store_test

import (
	"context"
	"testing"

	"github.com/Divarzky/jajanan-rizky/internal/domain/model"
	"github.com/Divarzky/jajanan-rizky/internal/infra/store"
	repo "github.com/Divarzky/jajanan-rizky/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormStore(t *testing.T) *store.GormStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))
	return store.NewGormStore(db)
}

// GormStoreとMemoryStoreは同じ契約を満たす
func stores(t *testing.T) map[string]repo.Store {
	return map[string]repo.Store{
		"gorm":   newGormStore(t),
		"memory": store.NewMemoryStore(),
	}
}

func TestStore_PutGet(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			p := model.Product{ID: "p-1", Category: "Minuman", Name: "Es Teh", Price: 5000, Stock: 10}
			require.NoError(t, kv.Put(ctx, repo.CollectionProducts, p.ID, p))

			var got model.Product
			require.NoError(t, kv.Get(ctx, repo.CollectionProducts, "p-1", &got))
			assert.Equal(t, p, got)
		})
	}
}

func TestStore_Put_OverwritesSameKey(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			p := model.Product{ID: "p-1", Name: "Es Teh", Price: 5000}
			require.NoError(t, kv.Put(ctx, repo.CollectionProducts, p.ID, p))

			p.Price = 6000
			require.NoError(t, kv.Put(ctx, repo.CollectionProducts, p.ID, p))

			var got model.Product
			require.NoError(t, kv.Get(ctx, repo.CollectionProducts, "p-1", &got))
			assert.Equal(t, int64(6000), got.Price)

			raws, err := kv.GetAll(ctx, repo.CollectionProducts)
			require.NoError(t, err)
			assert.Len(t, raws, 1)
		})
	}
}

func TestStore_Get_NotFound(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var got model.Product
			err := kv.Get(context.Background(), repo.CollectionProducts, "missing", &got)
			assert.ErrorIs(t, err, repo.ErrNotFound)
		})
	}
}

func TestStore_SameKeyInDifferentCollections(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, kv.Put(ctx, repo.CollectionProducts, "x", model.Product{ID: "x", Name: "Es Teh", Price: 5000}))
			require.NoError(t, kv.Put(ctx, repo.CollectionSettings, "x", model.Setting{Key: "x", Value: true}))

			var p model.Product
			require.NoError(t, kv.Get(ctx, repo.CollectionProducts, "x", &p))
			assert.Equal(t, "Es Teh", p.Name)

			var s model.Setting
			require.NoError(t, kv.Get(ctx, repo.CollectionSettings, "x", &s))
			assert.Equal(t, true, s.Value)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, kv.Put(ctx, repo.CollectionProducts, "p-1", model.Product{ID: "p-1", Name: "Es Teh", Price: 5000}))
			require.NoError(t, kv.Delete(ctx, repo.CollectionProducts, "p-1"))

			var got model.Product
			assert.ErrorIs(t, kv.Get(ctx, repo.CollectionProducts, "p-1", &got), repo.ErrNotFound)

			// 2回目はNotFound
			assert.ErrorIs(t, kv.Delete(ctx, repo.CollectionProducts, "p-1"), repo.ErrNotFound)
		})
	}
}

func TestStore_Clear(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, kv.Put(ctx, repo.CollectionProducts, "p-1", model.Product{ID: "p-1", Name: "Es Teh", Price: 5000}))
			require.NoError(t, kv.Put(ctx, repo.CollectionProducts, "p-2", model.Product{ID: "p-2", Name: "Kopi", Price: 7000}))
			require.NoError(t, kv.Put(ctx, repo.CollectionSales, "s-1", model.Sale{ID: "s-1"}))

			require.NoError(t, kv.Clear(ctx, repo.CollectionProducts))

			raws, err := kv.GetAll(ctx, repo.CollectionProducts)
			require.NoError(t, err)
			assert.Empty(t, raws)

			// 他コレクションは残る
			raws, err = kv.GetAll(ctx, repo.CollectionSales)
			require.NoError(t, err)
			assert.Len(t, raws, 1)

			// 空コレクションのClearもエラーにしない
			require.NoError(t, kv.Clear(ctx, repo.CollectionProducts))
		})
	}
}

func TestStore_UnknownCollection(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			assert.ErrorIs(t, kv.Put(ctx, "bogus", "k", struct{}{}), repo.ErrUnknownCollection)
			assert.ErrorIs(t, kv.Get(ctx, "bogus", "k", &struct{}{}), repo.ErrUnknownCollection)
			_, err := kv.GetAll(ctx, "bogus")
			assert.ErrorIs(t, err, repo.ErrUnknownCollection)
			assert.ErrorIs(t, kv.Delete(ctx, "bogus", "k"), repo.ErrUnknownCollection)
			assert.ErrorIs(t, kv.Clear(ctx, "bogus"), repo.ErrUnknownCollection)
		})
	}
}

func TestStore_DecodeAll(t *testing.T) {
	kv := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, repo.CollectionProducts, "p-1", model.Product{ID: "p-1", Name: "Es Teh", Price: 5000}))
	require.NoError(t, kv.Put(ctx, repo.CollectionProducts, "p-2", model.Product{ID: "p-2", Name: "Kopi", Price: 7000}))

	raws, err := kv.GetAll(ctx, repo.CollectionProducts)
	require.NoError(t, err)

	products, err := repo.DecodeAll[model.Product](raws)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}
