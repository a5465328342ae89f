package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chickkart-system/internal/common/logger"
	"chickkart-system/internal/domain"
)

type fakeMenuRepo struct {
	categoryCalls int
	items         []domain.MenuItem
}

func (f *fakeMenuRepo) ListCategories(context.Context) ([]domain.MenuCategory, error) {
	f.categoryCalls++
	return []domain.MenuCategory{{ID: "c1", Name: "Wings", Slug: "wings"}}, nil
}

func (f *fakeMenuRepo) ListItems(_ context.Context, slug, search string) ([]domain.MenuItem, error) {
	return f.items, nil
}

func (f *fakeMenuRepo) GetItem(_ context.Context, id string) (domain.MenuItem, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.MenuItem{}, domain.ErrNotFound
}

func TestCategoriesAreCachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	repo := &fakeMenuRepo{}
	svc := NewMenuService(repo, logger.New("test"))

	first, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.categoryCalls)

	svc.Invalidate()
	_, err = svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.categoryCalls)
}

func TestItemLookup(t *testing.T) {
	ctx := context.Background()
	repo := &fakeMenuRepo{items: []domain.MenuItem{{ID: "wings-6", Name: "6pc Wings", Price: 150}}}
	svc := NewMenuService(repo, logger.New("test"))

	it, err := svc.Item(ctx, "wings-6")
	require.NoError(t, err)
	assert.Equal(t, "6pc Wings", it.Name)

	_, err = svc.Item(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
