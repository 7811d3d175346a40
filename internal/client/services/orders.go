package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dinebridge/dinebridge/internal/client/api"
	"github.com/dinebridge/dinebridge/internal/client/models"
	"github.com/google/uuid"
)

// OrdersService covers the order endpoints.
type OrdersService struct {
	client *api.Client
}

func NewOrdersService(client *api.Client) *OrdersService {
	return &OrdersService{client: client}
}

// List returns orders, optionally filtered by status.
func (s *OrdersService) List(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}

	var orders []models.Order
	err := s.client.Do(ctx, &api.Request{
		Method: http.MethodGet,
		Path:   "/orders",
		Query:  query,
	}, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Get returns a single order by ID.
func (s *OrdersService) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.client.Do(ctx, &api.Request{
		Method: http.MethodGet,
		Path:   "/orders/" + id,
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Create opens a new order on a table. The idempotency key guards against
// double submission when a retried request actually landed the first time.
func (s *OrdersService) Create(ctx context.Context, tableID string, items []models.OrderItem) (*models.Order, error) {
	header := http.Header{}
	header.Set("Idempotency-Key", uuid.NewString())

	var order models.Order
	err := s.client.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   "/orders",
		Header: header,
		Body: map[string]any{
			"tableId": tableID,
			"items":   items,
		},
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves an order through the kitchen/service pipeline.
func (s *OrdersService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := s.client.Do(ctx, &api.Request{
		Method: http.MethodPatch,
		Path:   "/orders/" + id + "/status",
		Body:   map[string]any{"status": status},
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
