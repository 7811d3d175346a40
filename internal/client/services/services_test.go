package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dinebridge/dinebridge/internal/client/api"
	"github.com/dinebridge/dinebridge/internal/client/models"
	"github.com/dinebridge/dinebridge/internal/client/notify"
	"github.com/dinebridge/dinebridge/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return api.New(api.Options{BaseURL: srv.URL}, nil, notify.Nop{}, logger)
}

func TestAuthService_Login(t *testing.T) {
	var gotBody models.LoginRequest
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(models.LoginResponse{
			User:  models.User{ID: "u1", Email: "w@example.com", Role: "waiter"},
			Token: "tok-abc",
		})
	}))

	resp, err := NewAuthService(client).Login(context.Background(), "w@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "w@example.com", gotBody.Email)
	assert.Equal(t, "pw", gotBody.Password)
	assert.Equal(t, "tok-abc", resp.Token)
	assert.Equal(t, "waiter", resp.User.Role)
}

func TestAuthService_Refresh(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/refresh", r.URL.Path)
		json.NewEncoder(w).Encode(models.RefreshResponse{Token: "tok-new"})
	}))

	resp, err := NewAuthService(client).Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-new", resp.Token)
}

func TestAuthService_LoginErrorPropagates(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := NewAuthService(client).Login(context.Background(), "w@example.com", "bad")
	require.Error(t, err)
	assert.True(t, api.IsKind(err, api.KindAuthentication))
}

func TestOrdersService_ListFiltersByStatus(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		require.Equal(t, "open", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode([]models.Order{{ID: "ord-1", Status: models.OrderStatusOpen}})
	}))

	orders, err := NewOrdersService(client).List(context.Background(), models.OrderStatusOpen)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ord-1", orders[0].ID)
}

func TestOrdersService_CreateSendsIdempotencyKey(t *testing.T) {
	var gotKey string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Order{ID: "ord-2", TableID: "tbl-1"})
	}))

	items := []models.OrderItem{{MenuItemID: "m1", Name: "espresso", Quantity: 1, UnitPrice: 250}}
	order, err := NewOrdersService(client).Create(context.Background(), "tbl-1", items)
	require.NoError(t, err)
	assert.Equal(t, "ord-2", order.ID)
	assert.NotEmpty(t, gotKey)
}

func TestOrdersService_UpdateStatus(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/orders/ord-1/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "ready", body["status"])

		json.NewEncoder(w).Encode(models.Order{ID: "ord-1", Status: models.OrderStatusReady})
	}))

	order, err := NewOrdersService(client).UpdateStatus(context.Background(), "ord-1", models.OrderStatusReady)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReady, order.Status)
}

func TestTablesService_ListAndSetStatus(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tables":
			json.NewEncoder(w).Encode([]models.Table{{ID: "tbl-1", Number: 1, Status: models.TableStatusFree}})
		case "/tables/tbl-1/status":
			require.Equal(t, http.MethodPatch, r.Method)
			json.NewEncoder(w).Encode(models.Table{ID: "tbl-1", Number: 1, Status: models.TableStatusOccupied})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	svc := NewTablesService(client)

	tables, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, models.TableStatusFree, tables[0].Status)

	table, err := svc.SetStatus(context.Background(), "tbl-1", models.TableStatusOccupied)
	require.NoError(t, err)
	assert.Equal(t, models.TableStatusOccupied, table.Status)
}

func TestMenuService_ItemsFiltersByCategory(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/menu/categories":
			json.NewEncoder(w).Encode([]models.MenuCategory{{ID: "c1", Name: "Starters", Position: 1}})
		case "/menu/items":
			require.Equal(t, "c1", r.URL.Query().Get("categoryId"))
			json.NewEncoder(w).Encode([]models.MenuItem{{ID: "m1", CategoryID: "c1", Name: "Soup", Price: 550, Available: true}})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	svc := NewMenuService(client)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)

	items, err := svc.Items(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Soup", items[0].Name)
}
