package repository

import (
	"context"
	"testing"

	"gellies-store/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProducts(t *testing.T, repo ProductRepository, products ...model.Product) []model.Product {
	t.Helper()

	out := make([]model.Product, len(products))
	for i := range products {
		p := products[i]
		require.NoError(t, repo.Create(context.Background(), &p))
		require.NotEmpty(t, p.ID)
		out[i] = p
	}
	return out
}

func TestProductRepository_CreateAndGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, set *Set) {
		ctx := context.Background()
		repo := set.Products

		empty, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		seeded := seedProducts(t, repo,
			model.Product{Name: "Ube Jelly", Category: "Dessert", Size: "Large", Barcode: "4800001", Price: "120.50", Photo: "/uploads/a.png"},
			model.Product{Name: "Buko Jelly", Category: "Dessert", Price: "abc"},
		)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		got, err := repo.GetByID(ctx, seeded[0].ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, seeded[0], *got)

		// price is stored verbatim
		got, err = repo.GetByID(ctx, seeded[1].ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "abc", got.Price)
		assert.Empty(t, got.Photo)
	})
}

func TestProductRepository_GetByID_Missing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, set *Set) {
		ctx := context.Background()

		tests := []struct {
			name string
			id   string
		}{
			{name: "Well-formed unknown id", id: "6553f0c2a1b2c3d4e5f60718"},
			{name: "Malformed id", id: "P999"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				product, err := set.Products.GetByID(ctx, tt.id)
				require.NoError(t, err)
				assert.Nil(t, product)
			})
		}
	})
}

func TestProductRepository_GetByIDs(t *testing.T) {
	forEachBackend(t, func(t *testing.T, set *Set) {
		ctx := context.Background()
		seeded := seedProducts(t, set.Products,
			model.Product{Name: "A"},
			model.Product{Name: "B"},
			model.Product{Name: "C"},
		)

		tests := []struct {
			name     string
			ids      []string
			expected int
		}{
			{name: "All products", ids: []string{seeded[0].ID, seeded[1].ID, seeded[2].ID}, expected: 3},
			{name: "Subset", ids: []string{seeded[0].ID, seeded[2].ID}, expected: 2},
			{name: "Some missing", ids: []string{seeded[0].ID, "P999"}, expected: 1},
			{name: "None exist", ids: []string{"P998", "P999"}, expected: 0},
			{name: "Empty list", ids: []string{}, expected: 0},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				products, err := set.Products.GetByIDs(ctx, tt.ids)
				require.NoError(t, err)
				assert.Len(t, products, tt.expected)
			})
		}
	})
}

func TestProductRepository_Update(t *testing.T) {
	forEachBackend(t, func(t *testing.T, set *Set) {
		ctx := context.Background()
		seeded := seedProducts(t, set.Products,
			model.Product{Name: "Old", Category: "Cat", Size: "S", Barcode: "1", Price: "10", Photo: "/uploads/old.png"},
		)
		id := seeded[0].ID

		err := set.Products.Update(ctx, id, &model.ProductUpdate{
			ProductFields: model.ProductFields{Name: strPtr("New"), Price: strPtr("12")},
		})
		require.NoError(t, err)

		got, err := set.Products.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "New", got.Name)
		assert.Equal(t, "12", got.Price)
		assert.Equal(t, "Cat", got.Category, "absent fields are left alone")
		assert.Equal(t, "/uploads/old.png", got.Photo, "photo kept without a new file")

		err = set.Products.Update(ctx, id, &model.ProductUpdate{Photo: strPtr("/uploads/new.png")})
		require.NoError(t, err)

		got, err = set.Products.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "/uploads/new.png", got.Photo)

		// empty update on an existing product is not an error
		require.NoError(t, set.Products.Update(ctx, id, &model.ProductUpdate{}))
	})
}

func TestProductRepository_Update_Missing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, set *Set) {
		ctx := context.Background()

		for _, id := range []string{"6553f0c2a1b2c3d4e5f60718", "P999"} {
			err := set.Products.Update(ctx, id, &model.ProductUpdate{
				ProductFields: model.ProductFields{Name: strPtr("x")},
			})
			assert.ErrorIs(t, err, model.ErrNotFound)

			err = set.Products.Update(ctx, id, &model.ProductUpdate{})
			assert.ErrorIs(t, err, model.ErrNotFound)
		}
	})
}

func TestProductRepository_Delete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, set *Set) {
		ctx := context.Background()
		seeded := seedProducts(t, set.Products, model.Product{Name: "Doomed"})

		require.NoError(t, set.Products.Delete(ctx, seeded[0].ID))

		got, err := set.Products.GetByID(ctx, seeded[0].ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		assert.ErrorIs(t, set.Products.Delete(ctx, seeded[0].ID), model.ErrNotFound)
		assert.ErrorIs(t, set.Products.Delete(ctx, "P999"), model.ErrNotFound)
	})
}
