package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"travel-api/internal/domain"
	"travel-api/internal/repository"
)

var (
	ErrProvinceNotFound = errors.New("province not found")
	ErrInvalidProvince  = errors.New("invalid province")
)

// ProvinceService coordina reglas de negocio para provincias con cache de lectura.
type ProvinceService struct {
	logger    *zap.Logger
	provinces repository.ProvinceRepository
	cache     ProvinceCache
}

func NewProvinceService(logger *zap.Logger, provinces repository.ProvinceRepository, cache ProvinceCache) *ProvinceService {
	return &ProvinceService{
		logger:    logger,
		provinces: provinces,
		cache:     cache,
	}
}

func (s *ProvinceService) Create(ctx context.Context, name string, isSecondary bool) (domain.Province, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Province{}, ErrInvalidProvince
	}
	return s.provinces.Create(ctx, domain.Province{
		ProvinceName: name,
		IsSecondary:  isSecondary,
	})
}

// GetByID lee primero del cache; los errores del cache solo se loguean.
func (s *ProvinceService) GetByID(ctx context.Context, id int64) (domain.Province, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("province cache get failed", zap.Error(err), zap.Int64("province_id", id))
			}
		} else if ok {
			return cached, nil
		}
	}

	province, err := s.provinces.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Province{}, ErrProvinceNotFound
		}
		return domain.Province{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, province); err != nil && s.logger != nil {
			s.logger.Warn("province cache set failed", zap.Error(err), zap.Int64("province_id", id))
		}
	}
	return province, nil
}

func (s *ProvinceService) List(ctx context.Context) ([]domain.Province, error) {
	return s.provinces.List(ctx)
}

func (s *ProvinceService) Update(ctx context.Context, province domain.Province) (domain.Province, error) {
	province.ProvinceName = strings.TrimSpace(province.ProvinceName)
	if province.ProvinceName == "" {
		return domain.Province{}, ErrInvalidProvince
	}
	found, err := s.provinces.Update(ctx, province)
	if err != nil {
		return domain.Province{}, err
	}
	if !found {
		return domain.Province{}, ErrProvinceNotFound
	}
	s.invalidate(ctx, province.ID)
	return province, nil
}

func (s *ProvinceService) Delete(ctx context.Context, id int64) error {
	found, err := s.provinces.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrProvinceNotFound
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProvinceService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil && s.logger != nil {
		s.logger.Warn("province cache invalidate failed", zap.Error(err), zap.Int64("province_id", id))
	}
}
