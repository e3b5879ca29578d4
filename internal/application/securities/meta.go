package securities

import (
	"context"
	"encoding/json"
	"time"

	"titulos-console/internal/domain"

	"github.com/rs/zerolog/log"
)

// Meta is the facet summary (distinct kinds/issuers + total) the catalog
// exposes so a frontend can build filter pickers without pulling 1000 items.
type Meta struct {
	Total   int64    `json:"total"`
	Kinds   []string `json:"kinds"`
	Issuers []string `json:"issuers"`
}

const metaCacheKey = "securities:meta"
const metaCacheTTL = 60 * time.Second

// Meta computes the facet summary, serving from the Redis cache when one is
// configured. Cache failures fall through to the database.
func (s *Service) Meta(ctx context.Context) (*Meta, error) {
	if s.Rdb != nil {
		if b, err := s.Rdb.Get(ctx, metaCacheKey).Bytes(); err == nil {
			var m Meta
			if json.Unmarshal(b, &m) == nil {
				return &m, nil
			}
		}
	}

	var m Meta
	if err := s.DB.WithContext(ctx).Model(&domain.Security{}).Count(&m.Total).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Security{}).
		Distinct("kind").Order("kind asc").Pluck("kind", &m.Kinds).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Security{}).
		Distinct("issuer").Order("issuer asc").Pluck("issuer", &m.Issuers).Error; err != nil {
		return nil, err
	}

	if s.Rdb != nil {
		if b, err := json.Marshal(&m); err == nil {
			if err := s.Rdb.Set(ctx, metaCacheKey, b, metaCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("facet cache write failed")
			}
		}
	}
	return &m, nil
}

func (s *Service) invalidateMeta(ctx context.Context) {
	if s.Rdb == nil {
		return
	}
	if err := s.Rdb.Del(ctx, metaCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("facet cache invalidation failed")
	}
}
