package inventory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/database/dbtest"
	"github.com/georgemunganga/shopstock-backend/internal/metrics"
	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
	"github.com/georgemunganga/shopstock-backend/internal/modules/catalog"
	"github.com/georgemunganga/shopstock-backend/internal/modules/catalog/catalogtest"
	"github.com/georgemunganga/shopstock-backend/internal/modules/inventory"
	"github.com/georgemunganga/shopstock-backend/internal/modules/inventory/inventorytest"
	"github.com/georgemunganga/shopstock-backend/internal/validation"
)

type fixture struct {
	svc      inventory.Service
	store    *inventorytest.Store
	products *catalogtest.Repository
	shopID   uuid.UUID
	w1       *inventory.Warehouse
	widget   *catalog.Product
}

func newFixture() *fixture {
	f := &fixture{
		store:    inventorytest.NewStore(),
		products: catalogtest.NewRepository(),
		shopID:   uuid.New(),
	}
	f.svc = inventory.NewService(f.store, f.store, f.products, dbtest.Transactor{})
	f.w1 = f.store.SeedWarehouse(&inventory.Warehouse{ShopID: f.shopID, Name: "W1"})
	f.widget = f.products.Seed(&catalog.Product{ShopID: f.shopID, Name: "Widget", Stock: 100})
	return f
}

func (f *fixture) move(qty int64) (*inventory.StockMove, error) {
	return f.svc.MoveToWarehouse(context.Background(), inventory.MoveRequest{
		ShopID: f.shopID, WarehouseID: f.w1.ID, ProductID: f.widget.ID, Quantity: qty,
	})
}

func TestMoveToWarehouse(t *testing.T) {
	f := newFixture()
	before := testutil.ToFloat64(metrics.StockUnitsMoved)

	move, err := f.move(20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), move.Quantity)

	assert.Equal(t, int64(80), f.products.Stock(f.widget.ID))
	wp, err := f.svc.GetWarehouseProduct(context.Background(), f.w1.ID, f.widget.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), wp.Quantity)
	assert.Equal(t, 20.0, testutil.ToFloat64(metrics.StockUnitsMoved)-before)

	moves, err := f.svc.ListMoves(context.Background(), f.shopID)
	require.NoError(t, err)
	assert.Len(t, moves, 1)
}

func TestMoveToWarehouseAccumulatesIntoOneRow(t *testing.T) {
	f := newFixture()

	_, err := f.move(20)
	require.NoError(t, err)
	_, err = f.move(30)
	require.NoError(t, err)

	assert.Equal(t, 1, f.store.Rows())
	assert.Equal(t, int64(50), f.store.Quantity(f.w1.ID, f.widget.ID))
	assert.Equal(t, int64(50), f.products.Stock(f.widget.ID))
}

func TestMoveToWarehouseBoundaries(t *testing.T) {
	f := newFixture()

	_, err := f.move(101)
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.Equal(t, int64(100), f.products.Stock(f.widget.ID))

	_, err = f.move(100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.products.Stock(f.widget.ID))

	for _, qty := range []int64{0, -5} {
		_, err = f.move(qty)
		var verr *validation.Error
		assert.ErrorAs(t, err, &verr)
	}
}

func TestMoveToWarehouseRejectsOtherShops(t *testing.T) {
	f := newFixture()
	foreignWarehouse := f.store.SeedWarehouse(&inventory.Warehouse{ShopID: uuid.New(), Name: "W9"})
	foreignProduct := f.products.Seed(&catalog.Product{ShopID: uuid.New(), Name: "Other", Stock: 10})

	_, err := f.svc.MoveToWarehouse(context.Background(), inventory.MoveRequest{
		ShopID: f.shopID, WarehouseID: foreignWarehouse.ID, ProductID: f.widget.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, inventory.ErrShopMismatch)

	_, err = f.svc.MoveToWarehouse(context.Background(), inventory.MoveRequest{
		ShopID: f.shopID, WarehouseID: f.w1.ID, ProductID: foreignProduct.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, inventory.ErrShopMismatch)

	_, err = f.svc.MoveToWarehouse(context.Background(), inventory.MoveRequest{
		ShopID: f.shopID, WarehouseID: f.w1.ID, ProductID: uuid.New(), Quantity: 1,
	})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestReceiveAndReleaseStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	wp, err := f.svc.ReceiveStock(ctx, f.shopID, f.w1.ID, f.widget.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), wp.Quantity)
	assert.Equal(t, int64(100), f.products.Stock(f.widget.ID))

	_, err = f.svc.ReleaseStock(ctx, f.w1.ID, f.widget.ID, 8)
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

	wp, err = f.svc.ReleaseStock(ctx, f.w1.ID, f.widget.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), wp.Quantity)

	_, err = f.svc.ReceiveStock(ctx, uuid.New(), f.w1.ID, f.widget.ID, 1)
	assert.ErrorIs(t, err, inventory.ErrShopMismatch)
}

func TestWarehouseLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	w, err := f.svc.CreateWarehouse(ctx, inventory.CreateWarehouseRequest{ShopID: f.shopID, Name: "Back room"})
	require.NoError(t, err)

	w, err = f.svc.RenameWarehouse(ctx, w.ID, "Annex")
	require.NoError(t, err)
	assert.Equal(t, "Annex", w.Name)

	list, err := f.svc.ListWarehouses(ctx, f.shopID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, f.svc.DeleteWarehouse(ctx, w.ID))
	_, err = f.svc.GetWarehouse(ctx, w.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = f.svc.CreateWarehouse(ctx, inventory.CreateWarehouseRequest{ShopID: f.shopID})
	var verr *validation.Error
	assert.ErrorAs(t, err, &verr)
}

func TestWarehouseRoutesByRole(t *testing.T) {
	f := newFixture()
	body := `{"shop_id":"` + f.shopID.String() + `","warehouse_id":"` + f.w1.ID.String() +
		`","product_id":"` + f.widget.ID.String() + `","quantity":20}`

	tests := []struct {
		name      string
		principal *access.Principal
		method    string
		path      string
		body      string
		want      int
	}{
		{"salesman get warehouse", &access.Principal{IsSalesman: true}, http.MethodGet, "/api/v1/warehouses/" + f.w1.ID.String(), "", http.StatusOK},
		{"salesman move", &access.Principal{IsSalesman: true}, http.MethodPost, "/api/v1/stock-moves", body, http.StatusForbidden},
		{"manager move", &access.Principal{IsManager: true}, http.MethodPost, "/api/v1/stock-moves", body, http.StatusForbidden},
		{"owner move", &access.Principal{IsOwner: true}, http.MethodPost, "/api/v1/stock-moves", body, http.StatusCreated},
		{"owner overdraw", &access.Principal{IsOwner: true}, http.MethodPost, "/api/v1/stock-moves",
			strings.Replace(body, `"quantity":20`, `"quantity":500`, 1), http.StatusConflict},
		{"manager contents", &access.Principal{IsManager: true}, http.MethodGet, "/api/v1/warehouses/" + f.w1.ID.String() + "/products", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := chi.NewRouter()
			router.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					next.ServeHTTP(w, r.WithContext(access.WithPrincipal(r.Context(), tt.principal)))
				})
			})
			inventory.NewHandler(f.svc).RegisterRoutes(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
	assert.Equal(t, int64(80), f.products.Stock(f.widget.ID))
}
