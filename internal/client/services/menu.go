package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dinebridge/dinebridge/internal/client/api"
	"github.com/dinebridge/dinebridge/internal/client/models"
)

// MenuService covers the menu endpoints.
type MenuService struct {
	client *api.Client
}

func NewMenuService(client *api.Client) *MenuService {
	return &MenuService{client: client}
}

// Categories returns the menu categories in display order.
func (s *MenuService) Categories(ctx context.Context) ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	err := s.client.Do(ctx, &api.Request{
		Method: http.MethodGet,
		Path:   "/menu/categories",
	}, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Items returns menu items, optionally restricted to one category.
func (s *MenuService) Items(ctx context.Context, categoryID string) ([]models.MenuItem, error) {
	query := url.Values{}
	if categoryID != "" {
		query.Set("categoryId", categoryID)
	}

	var items []models.MenuItem
	err := s.client.Do(ctx, &api.Request{
		Method: http.MethodGet,
		Path:   "/menu/items",
		Query:  query,
	}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}
