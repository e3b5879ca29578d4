package securities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"titulos-console/internal/domain"
	"titulos-console/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a security id has no match in the catalog.
var ErrNotFound = errors.New("Security not found")

type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client // optional; facet metadata cache
}

const (
	DefaultLimit = 50
	MaxLimit     = 5000
)

// ListInput mirrors the catalog query contract. Zero values mean "no filter".
type ListInput struct {
	Kind         string
	Issuer       string
	Query        string
	MaturityFrom string
	MaturityTo   string
	RateMin      *decimal.Decimal
	RateMax      *decimal.Decimal
	Sort         string
	Order        string
	Limit        int
	Offset       int
}

var sortColumns = map[string]string{
	"maturity": "maturity",
	"rate":     "rate",
	"kind":     "kind",
	"issuer":   "issuer",
}

// List applies structured filters, free-text search, sorting and paging in SQL.
func (s *Service) List(ctx context.Context, in ListInput) ([]domain.Security, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Security{})

	if kind := validation.NormalizeKind(in.Kind); kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if issuer := validation.NormalizeName(in.Issuer); issuer != "" {
		q = q.Where("issuer = ?", issuer)
	}
	if in.MaturityFrom != "" {
		q = q.Where("maturity >= ?", in.MaturityFrom)
	}
	if in.MaturityTo != "" {
		q = q.Where("maturity <= ?", in.MaturityTo)
	}
	if in.RateMin != nil {
		q = q.Where("rate >= ?", *in.RateMin)
	}
	if in.RateMax != nil {
		q = q.Where("rate <= ?", *in.RateMax)
	}
	if needle := strings.ToLower(strings.TrimSpace(in.Query)); needle != "" {
		like := "%" + needle + "%"
		q = q.Where(
			"lower(kind) LIKE ? OR lower(issuer) LIKE ? OR lower(cast(id AS text)) LIKE ? OR maturity LIKE ? OR cast(rate AS text) LIKE ?",
			like, like, like, like, like,
		)
	}

	col, ok := sortColumns[in.Sort]
	if !ok {
		col = "maturity"
	}
	dir := "asc"
	if strings.EqualFold(in.Order, "desc") {
		dir = "desc"
	}
	q = q.Order(col + " " + dir)

	limit := in.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	out := []domain.Security{}
	if err := q.Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list securities: %w", err)
	}
	return out, nil
}

// Get fetches one security by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Security, error) {
	var sec domain.Security
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&sec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sec, nil
}

// Load replaces the catalog wholesale with the given seed set and drops any
// cached facet metadata.
func (s *Service) Load(ctx context.Context, secs []domain.Security) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.Security{}).Error; err != nil {
			return err
		}
		if len(secs) == 0 {
			return nil
		}
		return tx.CreateInBatches(secs, 200).Error
	})
	if err != nil {
		return fmt.Errorf("load securities: %w", err)
	}
	s.invalidateMeta(ctx)
	return nil
}
