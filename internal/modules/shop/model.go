package shop

import (
	"time"

	"github.com/google/uuid"
)

// Shop is the tenant boundary: every product, warehouse, party and
// transaction belongs to exactly one shop.
type Shop struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Money     int64      `json:"money"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
