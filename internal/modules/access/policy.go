// Package access decides whether an authenticated principal may perform an
// HTTP method on a resource. Roles are independent flags, so a user holding
// several of them gets the union of their permissions.
package access

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/georgemunganga/shopstock-backend/internal/logger"
)

// Resource names a guarded entity type.
type Resource string

const (
	Shop                Resource = "shop"
	User                Resource = "user"
	Product             Resource = "product"
	Warehouse           Resource = "warehouse"
	Customer            Resource = "customer"
	Vendor              Resource = "vendor"
	CustomerTransaction Resource = "customer_transaction"
	VendorTransaction   Resource = "vendor_transaction"
)

// Resources lists every guarded resource.
var Resources = []Resource{Shop, User, Product, Warehouse, Customer, Vendor, CustomerTransaction, VendorTransaction}

// Principal is the authenticated caller as seen by the policy.
type Principal struct {
	UserID      uuid.UUID
	IsSuperuser bool
	IsOwner     bool
	IsManager   bool
	IsSalesman  bool
}

type methodSet map[string]bool

func methods(ms ...string) methodSet {
	s := make(methodSet, len(ms))
	for _, m := range ms {
		s[m] = true
	}
	return s
}

var (
	safe    = methods(http.MethodGet, http.MethodHead, http.MethodOptions)
	noDel   = methods(http.MethodPost, http.MethodGet, http.MethodPut, http.MethodPatch)
	readPut = methods(http.MethodGet, http.MethodPut, http.MethodPatch)
	all     = methods(http.MethodGet, http.MethodHead, http.MethodOptions,
		http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete)
)

// Grants maps a resource to the methods a role may use on it.
type Grants map[Resource]methodSet

// Policy holds the per-role grants. The zero value denies everything
// except superusers.
type Policy struct {
	Owner    Grants
	Manager  Grants
	Salesman Grants
}

// DefaultPolicy is the shop role table.
var DefaultPolicy = &Policy{
	Owner: Grants{
		Shop:                readPut,
		User:                all,
		Customer:            all,
		Vendor:              all,
		Warehouse:           all,
		Product:             all,
		CustomerTransaction: all,
		VendorTransaction:   all,
	},
	Manager: Grants{
		Product:             noDel,
		CustomerTransaction: noDel,
		Warehouse:           safe,
		Customer:            safe,
		Vendor:              safe,
	},
	Salesman: Grants{
		Warehouse:           safe,
		Customer:            safe,
		Vendor:              safe,
		Product:             safe,
		CustomerTransaction: noDel,
	},
}

// Allow reports whether p may use method on res under DefaultPolicy.
func Allow(p *Principal, res Resource, method string) bool {
	return DefaultPolicy.Allow(p, res, method)
}

// Allow reports whether p may use method on res. Anonymous callers are
// denied, and a failure while evaluating counts as a denial.
func (pol *Policy) Allow(p *Principal, res Resource, method string) (allowed bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error("access policy evaluation failed",
				zap.Any("panic", r),
				zap.String("resource", string(res)),
				zap.String("method", method),
			)
			allowed = false
		}
	}()

	if p == nil {
		return false
	}
	if p.IsSuperuser {
		return true
	}
	if p.IsOwner && pol.Owner[res][method] {
		return true
	}
	if p.IsManager && pol.Manager[res][method] {
		return true
	}
	if p.IsSalesman && pol.Salesman[res][method] {
		return true
	}
	return false
}
