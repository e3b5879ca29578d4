package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Security is one fixed-income instrument from the catalog. Immutable once
// loaded; the seed loader is the only writer.
type Security struct {
	ID       uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Kind     string          `gorm:"column:kind;not null;index" json:"kind"`
	Maturity string          `gorm:"column:maturity;not null" json:"maturity"` // YYYY-MM-DD
	Rate     decimal.Decimal `gorm:"column:rate;type:decimal(12,4);not null" json:"rate"`
	Issuer   string          `gorm:"column:issuer;not null;index" json:"issuer"`
}

func (Security) TableName() string {
	return "securities"
}

func (s *Security) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
