// Package inventorytest provides in-memory inventory repositories.
package inventorytest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/modules/inventory"
)

type pair struct{ warehouse, product uuid.UUID }

// Store implements both inventory.WarehouseRepository and
// inventory.StockRepository.
type Store struct {
	mu         sync.Mutex
	warehouses map[uuid.UUID]*inventory.Warehouse
	stock      map[pair]*inventory.WarehouseProduct
	moves      []*inventory.StockMove
}

func NewStore() *Store {
	return &Store{
		warehouses: map[uuid.UUID]*inventory.Warehouse{},
		stock:      map[pair]*inventory.WarehouseProduct{},
	}
}

// SeedWarehouse stores w and returns it.
func (s *Store) SeedWarehouse(w *inventory.Warehouse) *inventory.Warehouse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	cp := *w
	s.warehouses[w.ID] = &cp
	return w
}

// Quantity returns the units of productID held in warehouseID.
func (s *Store) Quantity(warehouseID, productID uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if wp, ok := s.stock[pair{warehouseID, productID}]; ok {
		return wp.Quantity
	}
	return 0
}

// Rows returns how many (warehouse, product) rows exist.
func (s *Store) Rows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stock)
}

func (s *Store) CreateWarehouse(_ context.Context, w *inventory.Warehouse) error {
	s.SeedWarehouse(w)
	return nil
}

func (s *Store) GetWarehouseByID(_ context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.warehouses[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (s *Store) ListWarehouses(_ context.Context, shopID uuid.UUID) ([]*inventory.Warehouse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*inventory.Warehouse{}
	for _, w := range s.warehouses {
		if w.ShopID == shopID {
			cp := *w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateWarehouse(_ context.Context, w *inventory.Warehouse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.warehouses[w.ID]; !ok {
		return database.ErrNotFound
	}
	cp := *w
	s.warehouses[w.ID] = &cp
	return nil
}

func (s *Store) DeleteWarehouse(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.warehouses[id]; !ok {
		return database.ErrNotFound
	}
	for _, m := range s.moves {
		if m.WarehouseID == id {
			return database.ErrInvalidReference
		}
	}
	delete(s.warehouses, id)
	for k := range s.stock {
		if k.warehouse == id {
			delete(s.stock, k)
		}
	}
	return nil
}

func (s *Store) AddToWarehouse(_ context.Context, shopID, warehouseID, productID uuid.UUID, qty int64) (*inventory.WarehouseProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pair{warehouseID, productID}
	wp, ok := s.stock[k]
	if !ok {
		wp = &inventory.WarehouseProduct{ID: uuid.New(), ShopID: shopID, WarehouseID: warehouseID, ProductID: productID}
		s.stock[k] = wp
	}
	wp.Quantity += qty
	cp := *wp
	return &cp, nil
}

func (s *Store) RemoveFromWarehouse(_ context.Context, warehouseID, productID uuid.UUID, qty int64) (*inventory.WarehouseProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wp, ok := s.stock[pair{warehouseID, productID}]
	if !ok {
		return nil, database.ErrNotFound
	}
	if wp.Quantity < qty {
		return nil, inventory.ErrInsufficientStock
	}
	wp.Quantity -= qty
	cp := *wp
	return &cp, nil
}

func (s *Store) GetWarehouseProduct(_ context.Context, warehouseID, productID uuid.UUID) (*inventory.WarehouseProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wp, ok := s.stock[pair{warehouseID, productID}]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *wp
	return &cp, nil
}

func (s *Store) ListWarehouseProducts(_ context.Context, warehouseID uuid.UUID) ([]*inventory.WarehouseProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*inventory.WarehouseProduct{}
	for k, wp := range s.stock {
		if k.warehouse == warehouseID {
			cp := *wp
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) CreateMove(_ context.Context, m *inventory.StockMove) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.moves = append(s.moves, &cp)
	return nil
}

func (s *Store) ListMoves(_ context.Context, shopID uuid.UUID) ([]*inventory.StockMove, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*inventory.StockMove{}
	for i := len(s.moves) - 1; i >= 0; i-- {
		if s.moves[i].ShopID == shopID {
			cp := *s.moves[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}
