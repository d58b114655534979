package order

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/logger"
	"github.com/georgemunganga/shopstock-backend/internal/modules/billing"
	"github.com/georgemunganga/shopstock-backend/internal/modules/inventory"
	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
	"github.com/georgemunganga/shopstock-backend/internal/validation"
)

// Service defines business logic for customer and vendor transactions.
type Service interface {
	CreateTransaction(ctx context.Context, kind party.Kind, req CreateTransactionRequest) (*Transaction, error)
	GetTransaction(ctx context.Context, kind party.Kind, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, kind party.Kind, shopID uuid.UUID) ([]*Transaction, error)
	AddItem(ctx context.Context, kind party.Kind, transactionID uuid.UUID, req AddItemRequest) (*Item, error)
	RemoveItem(ctx context.Context, kind party.Kind, transactionID, itemID uuid.UUID) error
	Checkout(ctx context.Context, kind party.Kind, req CheckoutRequest) (*Transaction, error)
}

// CreateTransactionRequest opens a transaction with a customer or vendor.
type CreateTransactionRequest struct {
	ShopID  uuid.UUID `json:"shop_id"`
	PartyID uuid.UUID `json:"party_id"`
}

// AddItemRequest adds a line. A nil ProductID records an empty line. When Bill
// is nil the line is priced from the product: selling price for customers,
// buying price for vendors.
type AddItemRequest struct {
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	WarehouseID *uuid.UUID `json:"warehouse_id,omitempty"`
	Quantity    int64      `json:"quantity"`
	Bill        *int64     `json:"bill,omitempty"`
}

// CheckoutRequest creates a transaction, its items and its bill at once.
type CheckoutRequest struct {
	ShopID  uuid.UUID        `json:"shop_id"`
	PartyID uuid.UUID        `json:"party_id"`
	Items   []AddItemRequest `json:"items"`
	Bill    *int64           `json:"bill,omitempty"`
	Paid    int64            `json:"paid"`
}

type service struct {
	repo      Repository
	parties   party.Service
	products  ProductStore
	inventory inventory.Service
	billing   billing.Service
	tx        database.Transactor
}

// NewService creates a new order service.
func NewService(
	repo Repository,
	parties party.Service,
	products ProductStore,
	inv inventory.Service,
	bills billing.Service,
	tx database.Transactor,
) Service {
	return &service{
		repo:      repo,
		parties:   parties,
		products:  products,
		inventory: inv,
		billing:   bills,
		tx:        tx,
	}
}

func (s *service) CreateTransaction(ctx context.Context, kind party.Kind, req CreateTransactionRequest) (*Transaction, error) {
	v := validation.Violations{}
	if req.ShopID == uuid.Nil {
		v.Add("shop_id", "is required")
	}
	if req.PartyID == uuid.Nil {
		v.Add("party_id", "is required")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	p, err := s.parties.Get(ctx, kind, req.PartyID)
	if err != nil {
		return nil, err
	}
	if p.ShopID != req.ShopID {
		return nil, inventory.ErrShopMismatch
	}

	t := &Transaction{
		ID:      uuid.New(),
		ShopID:  req.ShopID,
		Kind:    kind,
		PartyID: p.ID,
	}
	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetTransaction(ctx context.Context, kind party.Kind, id uuid.UUID) (*Transaction, error) {
	t, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Kind != kind {
		return nil, party.ErrKindMismatch
	}
	if t.Items, err = s.repo.ListItems(ctx, id); err != nil {
		return nil, err
	}
	b, err := s.billing.GetBill(ctx, kind, id)
	switch {
	case err == nil:
		t.Bill = b
	case !errors.Is(err, database.ErrNotFound):
		return nil, err
	}
	return t, nil
}

func (s *service) ListTransactions(ctx context.Context, kind party.Kind, shopID uuid.UUID) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, kind, shopID)
}

// lockOpen locks the transaction header and fails when it is of another kind
// or already billed.
func (s *service) lockOpen(ctx context.Context, kind party.Kind, id uuid.UUID) (*Transaction, error) {
	t, err := s.repo.GetTransactionForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Kind != kind {
		return nil, party.ErrKindMismatch
	}
	billed, err := s.billing.IsBilled(ctx, id)
	if err != nil {
		return nil, err
	}
	if billed {
		return nil, ErrAlreadyBilled
	}
	return t, nil
}

func (s *service) AddItem(ctx context.Context, kind party.Kind, transactionID uuid.UUID, req AddItemRequest) (*Item, error) {
	if err := validateItem(kind, req); err != nil {
		return nil, err
	}

	var item *Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := s.lockOpen(ctx, kind, transactionID)
		if err != nil {
			return err
		}
		item, err = s.addItem(ctx, t, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func validateItem(kind party.Kind, req AddItemRequest) error {
	v := validation.Violations{}
	if req.ProductID != nil {
		validation.Positive(v, "quantity", req.Quantity)
		if req.Bill != nil {
			validation.NonNegative(v, "bill", *req.Bill)
		}
		if kind == party.Vendor && req.WarehouseID == nil {
			v.Add("warehouse_id", "is required for vendor items")
		}
	}
	if kind == party.Customer && req.WarehouseID != nil {
		v.Add("warehouse_id", "only applies to vendor items")
	}
	return v.Err()
}

// addItem must run inside a store transaction holding the header lock.
func (s *service) addItem(ctx context.Context, t *Transaction, req AddItemRequest) (*Item, error) {
	item := &Item{
		ID:            uuid.New(),
		TransactionID: t.ID,
		ShopID:        t.ShopID,
		WarehouseID:   req.WarehouseID,
	}
	if req.ProductID == nil {
		return item, s.repo.AddItem(ctx, item)
	}

	product, err := s.products.GetForUpdate(ctx, *req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.ShopID != t.ShopID {
		return nil, inventory.ErrShopMismatch
	}

	price := product.SellingPrice
	if t.Kind == party.Vendor {
		price = product.BuyingPrice
	}
	item.ProductID = &product.ID
	item.Quantity = req.Quantity
	switch {
	case req.Bill != nil:
		item.Bill = *req.Bill
	case price != 0 && req.Quantity > math.MaxInt64/price:
		return nil, validation.Single("quantity", "is too large for the unit price")
	default:
		item.Bill = req.Quantity * price
	}

	if t.Kind == party.Customer && product.Stock < req.Quantity {
		return nil, inventory.ErrInsufficientStock
	}
	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}

	switch t.Kind {
	case party.Customer:
		_, err = s.products.AdjustStock(ctx, product.ID, -item.Quantity)
	case party.Vendor:
		_, err = s.inventory.ReceiveStock(ctx, t.ShopID, *item.WarehouseID, product.ID, item.Quantity)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes an unbilled line and reverses its stock effect.
func (s *service) RemoveItem(ctx context.Context, kind party.Kind, transactionID, itemID uuid.UUID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := s.lockOpen(ctx, kind, transactionID)
		if err != nil {
			return err
		}
		item, err := s.repo.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item.TransactionID != t.ID {
			return database.ErrNotFound
		}

		if item.ProductID != nil && item.Quantity > 0 {
			switch t.Kind {
			case party.Customer:
				_, err = s.products.AdjustStock(ctx, *item.ProductID, item.Quantity)
			case party.Vendor:
				_, err = s.inventory.ReleaseStock(ctx, *item.WarehouseID, *item.ProductID, item.Quantity)
			}
			if err != nil {
				return err
			}
		}
		return s.repo.DeleteItem(ctx, item.ID)
	})
}

// Checkout records a complete sale or purchase in one store transaction:
// header, every item with its stock effect, and the bill.
func (s *service) Checkout(ctx context.Context, kind party.Kind, req CheckoutRequest) (*Transaction, error) {
	v := validation.Violations{}
	validation.NonNegative(v, "paid", req.Paid)
	if err := v.Err(); err != nil {
		return nil, err
	}
	for _, it := range req.Items {
		if err := validateItem(kind, it); err != nil {
			return nil, err
		}
	}

	var id uuid.UUID
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := s.CreateTransaction(ctx, kind, CreateTransactionRequest{ShopID: req.ShopID, PartyID: req.PartyID})
		if err != nil {
			return err
		}
		id = t.ID
		for _, it := range req.Items {
			if _, err := s.addItem(ctx, t, it); err != nil {
				return err
			}
		}
		_, err = s.billing.CreateBill(ctx, kind, billing.CreateBillRequest{
			TransactionID: t.ID,
			Amount:        req.Bill,
			Paid:          req.Paid,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	t, err := s.GetTransaction(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("checkout completed",
		zap.String("kind", string(kind)),
		zap.String("transaction_id", t.ID.String()),
		zap.Int("items", len(t.Items)),
	)
	return t, nil
}
