package access

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var verbs = []string{
	http.MethodGet, http.MethodHead, http.MethodOptions,
	http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
}

// expected permissions per single role, written out verb by verb.
var roleTable = map[string]map[Resource]string{
	"owner": {
		Shop:                "GET PUT PATCH",
		User:                "GET HEAD OPTIONS POST PUT PATCH DELETE",
		Customer:            "GET HEAD OPTIONS POST PUT PATCH DELETE",
		Vendor:              "GET HEAD OPTIONS POST PUT PATCH DELETE",
		Warehouse:           "GET HEAD OPTIONS POST PUT PATCH DELETE",
		Product:             "GET HEAD OPTIONS POST PUT PATCH DELETE",
		CustomerTransaction: "GET HEAD OPTIONS POST PUT PATCH DELETE",
		VendorTransaction:   "GET HEAD OPTIONS POST PUT PATCH DELETE",
	},
	"manager": {
		Product:             "POST GET PUT PATCH",
		CustomerTransaction: "POST GET PUT PATCH",
		Warehouse:           "GET HEAD OPTIONS",
		Customer:            "GET HEAD OPTIONS",
		Vendor:              "GET HEAD OPTIONS",
	},
	"salesman": {
		Warehouse:           "GET HEAD OPTIONS",
		Customer:            "GET HEAD OPTIONS",
		Vendor:              "GET HEAD OPTIONS",
		Product:             "GET HEAD OPTIONS",
		CustomerTransaction: "POST GET PUT PATCH",
	},
}

func roleAllows(role string, res Resource, method string) bool {
	for _, m := range strings.Fields(roleTable[role][res]) {
		if m == method {
			return true
		}
	}
	return false
}

func TestAllowEveryRoleCombination(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		p := &Principal{
			UserID:      uuid.New(),
			IsSuperuser: mask&1 != 0,
			IsOwner:     mask&2 != 0,
			IsManager:   mask&4 != 0,
			IsSalesman:  mask&8 != 0,
		}
		for _, res := range Resources {
			for _, verb := range verbs {
				want := p.IsSuperuser ||
					(p.IsOwner && roleAllows("owner", res, verb)) ||
					(p.IsManager && roleAllows("manager", res, verb)) ||
					(p.IsSalesman && roleAllows("salesman", res, verb))
				assert.Equal(t, want, Allow(p, res, verb),
					"superuser=%v owner=%v manager=%v salesman=%v %s %s",
					p.IsSuperuser, p.IsOwner, p.IsManager, p.IsSalesman, verb, res)
			}
		}
	}
}

func TestAllowNoFlagsDeniesEverything(t *testing.T) {
	p := &Principal{UserID: uuid.New()}
	for _, res := range Resources {
		for _, verb := range verbs {
			assert.False(t, Allow(p, res, verb), "%s %s", verb, res)
		}
	}
}

func TestAllowAnonymousDenied(t *testing.T) {
	for _, res := range Resources {
		assert.False(t, Allow(nil, res, http.MethodGet))
	}
}

func TestSalesmanScenario(t *testing.T) {
	salesman := &Principal{UserID: uuid.New(), IsSalesman: true}

	assert.False(t, Allow(salesman, Product, http.MethodDelete))
	assert.True(t, Allow(salesman, Warehouse, http.MethodGet))
	assert.False(t, Allow(salesman, VendorTransaction, http.MethodGet))
}

func TestOwnerCannotCreateOrDeleteShop(t *testing.T) {
	owner := &Principal{UserID: uuid.New(), IsOwner: true}

	assert.True(t, Allow(owner, Shop, http.MethodPatch))
	assert.False(t, Allow(owner, Shop, http.MethodPost))
	assert.False(t, Allow(owner, Shop, http.MethodDelete))
}

func TestUnknownMethodDenied(t *testing.T) {
	owner := &Principal{UserID: uuid.New(), IsOwner: true}
	assert.False(t, Allow(owner, Product, "PROPFIND"))
}

func TestAllowRecoversAsDenial(t *testing.T) {
	owner := &Principal{IsOwner: true}
	var broken *Policy
	assert.False(t, (&Policy{}).Allow(owner, Product, http.MethodGet))
	assert.NotPanics(t, func() {
		assert.False(t, broken.Allow(owner, Product, http.MethodGet))
	})
}

func TestRequireMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := Require(Product)(ok)

	tests := []struct {
		name      string
		principal *Principal
		method    string
		want      int
	}{
		{"anonymous", nil, http.MethodGet, http.StatusUnauthorized},
		{"salesman delete", &Principal{IsSalesman: true}, http.MethodDelete, http.StatusForbidden},
		{"salesman get", &Principal{IsSalesman: true}, http.MethodGet, http.StatusNoContent},
		{"manager post", &Principal{IsManager: true}, http.MethodPost, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/products", nil)
			if tt.principal != nil {
				req = req.WithContext(WithPrincipal(req.Context(), tt.principal))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
