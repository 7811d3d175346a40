package services

import (
	"context"
	"net/http"

	"github.com/dinebridge/dinebridge/internal/client/api"
	"github.com/dinebridge/dinebridge/internal/client/models"
)

// TablesService covers the floor-plan endpoints.
type TablesService struct {
	client *api.Client
}

func NewTablesService(client *api.Client) *TablesService {
	return &TablesService{client: client}
}

// List returns all tables with their current occupancy.
func (s *TablesService) List(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	err := s.client.Do(ctx, &api.Request{
		Method: http.MethodGet,
		Path:   "/tables",
	}, &tables)
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// SetStatus updates the occupancy state of a table.
func (s *TablesService) SetStatus(ctx context.Context, id string, status models.TableStatus) (*models.Table, error) {
	var table models.Table
	err := s.client.Do(ctx, &api.Request{
		Method: http.MethodPatch,
		Path:   "/tables/" + id + "/status",
		Body:   map[string]any{"status": status},
	}, &table)
	if err != nil {
		return nil, err
	}
	return &table, nil
}
