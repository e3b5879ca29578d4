package domain

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Allocation assigns a quantity of a security to a customer. Quantity >= 1 is
// enforced before submission, not by the schema.
type Allocation struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index" json:"customerId"`
	SecurityID uuid.UUID `gorm:"column:security_id;type:uuid;not null" json:"securityId"`
	Quantity   int       `gorm:"column:quantity;not null" json:"quantity"`
	// Arrival order; listings sort on this so grouping sees insertion order.
	CreatedAt int64 `gorm:"column:created_at;autoCreateTime:nano" json:"-"`
}

func (Allocation) TableName() string {
	return "allocations"
}

func (a *Allocation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
