package service

import (
	"context"
	"sync"

	"chickkart-system/internal/common/logger"
	"chickkart-system/internal/domain"
	"chickkart-system/internal/microservices/menu/repository"
)

type MenuServiceInterface interface {
	Categories(ctx context.Context) ([]domain.MenuCategory, error)
	Items(ctx context.Context, categorySlug, search string) ([]domain.MenuItem, error)
	Item(ctx context.Context, id string) (domain.MenuItem, error)
}

// MenuService reads the catalog. Categories are cached until a menu-change
// notification invalidates them; item queries always hit the database.
type MenuService struct {
	repo repository.MenuRepositoryInterface
	lg   *logger.Logger

	mu         sync.Mutex
	categories []domain.MenuCategory
}

func NewMenuService(repo repository.MenuRepositoryInterface, lg *logger.Logger) *MenuService {
	return &MenuService{repo: repo, lg: lg}
}

func (s *MenuService) Categories(ctx context.Context) ([]domain.MenuCategory, error) {
	s.mu.Lock()
	cached := s.categories
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.categories = cats
	s.mu.Unlock()
	return cats, nil
}

func (s *MenuService) Items(ctx context.Context, categorySlug, search string) ([]domain.MenuItem, error) {
	return s.repo.ListItems(ctx, categorySlug, search)
}

func (s *MenuService) Item(ctx context.Context, id string) (domain.MenuItem, error) {
	return s.repo.GetItem(ctx, id)
}

// Invalidate drops the category cache so the next read re-fetches.
func (s *MenuService) Invalidate() {
	s.mu.Lock()
	s.categories = nil
	s.mu.Unlock()
}

// WatchChanges runs the LISTEN loop until ctx is cancelled, invalidating the
// cache on every menu-change notification.
func (s *MenuService) WatchChanges(ctx context.Context, lr interface {
	Listen(ctx context.Context, onChange func(payload string)) error
}) {
	if err := lr.Listen(ctx, func(payload string) {
		s.lg.Info("menu_changed", map[string]any{"payload": payload})
		s.Invalidate()
	}); err != nil {
		s.lg.Error("menu_listener_stopped", err, nil)
	}
}
