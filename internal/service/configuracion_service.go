package service

import (
	"context"
	"errors"
	"time"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/apierror"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/dto"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/model"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	tasaCacheKey = "config:tasa_bcv"
	tasaCacheTTL = 5 * time.Minute
)

// TasaPorDefecto is used the first time the rate is read and nothing
// has been configured yet.
var TasaPorDefecto = decimal.NewFromFloat(36.00)

// ConfiguracionService manages the store-wide settings singleton.
type ConfiguracionService interface {
	ObtenerTasa(ctx context.Context) (*dto.TasaResponse, error)
	ActualizarTasa(ctx context.Context, req dto.ActualizarTasaRequest) (*dto.TasaActualizadaResponse, error)
}

type configuracionService struct {
	repo repository.ConfiguracionRepository
	rdb  *redis.Client
}

func NewConfiguracionService(repo repository.ConfiguracionRepository, rdb *redis.Client) ConfiguracionService {
	return &configuracionService{repo: repo, rdb: rdb}
}

func (s *configuracionService) ObtenerTasa(ctx context.Context) (*dto.TasaResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, tasaCacheKey).Result(); err == nil {
			if tasa, perr := decimal.NewFromString(raw); perr == nil {
				return &dto.TasaResponse{TasaBCV: tasa}, nil
			}
		}
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// First read ever: persist the default so later updates have a row.
		cfg = &model.Configuracion{ID: model.ConfiguracionID, TasaBCV: TasaPorDefecto}
		if err := s.repo.Upsert(ctx, cfg); err != nil {
			return nil, err
		}
	}

	s.cachear(ctx, cfg.TasaBCV)
	return &dto.TasaResponse{TasaBCV: cfg.TasaBCV}, nil
}

func (s *configuracionService) ActualizarTasa(ctx context.Context, req dto.ActualizarTasaRequest) (*dto.TasaActualizadaResponse, error) {
	if !req.TasaBCV.IsPositive() {
		return nil, apierror.Validacion("La tasa debe ser un número mayor que cero.")
	}

	cfg := &model.Configuracion{ID: model.ConfiguracionID, TasaBCV: req.TasaBCV}
	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}

	s.cachear(ctx, req.TasaBCV)
	return &dto.TasaActualizadaResponse{
		Mensaje: "Tasa actualizada correctamente.",
		TasaBCV: req.TasaBCV,
	}, nil
}

func (s *configuracionService) cachear(ctx context.Context, tasa decimal.Decimal) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, tasaCacheKey, tasa.String(), tasaCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo cachear la tasa BCV")
	}
}
