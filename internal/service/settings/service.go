package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/gig-conflicts/internal/domain"
	settingsRepo "github.com/m04kA/gig-conflicts/internal/infra/storage/settings"
	"github.com/m04kA/gig-conflicts/internal/service/settings/models"
	"github.com/m04kA/gig-conflicts/internal/service/severity"
)

// Service сервис порогов классификации исполнителей
// Владелец без переопределения получает пороги сервиса по умолчанию
type Service struct {
	repo     SettingsRepository
	defaults severity.Thresholds
	clock    TimeProvider
	logger   Logger
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// NewService создает новый экземпляр сервиса порогов
func NewService(
	repo SettingsRepository,
	defaults severity.Thresholds,
	clock TimeProvider,
	logger Logger,
) *Service {
	if clock == nil {
		clock = systemClock{}
	}
	return &Service{
		repo:     repo,
		defaults: defaults,
		clock:    clock,
		logger:   logger,
	}
}

// Get возвращает действующие пороги владельца
func (s *Service) Get(ctx context.Context, ownerID string) (*models.SettingsResponse, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	stored, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return s.defaultsFor(ownerID), nil
		}
		s.logger.Error("Get: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSettings(stored), nil
}

// Thresholds возвращает пороги для классификации конфликтов владельца
func (s *Service) Thresholds(ctx context.Context, ownerID string) (severity.Thresholds, error) {
	current, err := s.Get(ctx, ownerID)
	if err != nil {
		return severity.Thresholds{}, err
	}
	return severity.Thresholds{
		TravelBufferMinutes:     current.TravelBufferMinutes,
		UnknownTravelGapMinutes: current.UnknownTravelGapMinutes,
	}, nil
}

// Update переопределяет пороги владельца; незаданные поля сохраняют действующие значения
// Новые пороги применяются со следующего пересчета, сохраненные записи не меняются
func (s *Service) Update(ctx context.Context, ownerID string, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating thresholds for owner=%s", ownerID)

	// 1. Валидируем входные данные
	if ownerID == "" || len(ownerID) > domain.MaxIDLength {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	if req == nil || (req.TravelBufferMinutes == nil && req.UnknownTravelGapMinutes == nil) {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if err := validateMinutes("travel buffer", req.TravelBufferMinutes, domain.MaxTravelBufferMinutes); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}
	if err := validateMinutes("unknown travel gap", req.UnknownTravelGapMinutes, domain.MaxUnknownTravelGapMinutes); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 2. Незаданные поля новой строки берутся из порогов по умолчанию;
	// у существующей строки база перезаписывает только заданные поля
	next := &domain.OwnerSettings{
		OwnerID:                 ownerID,
		TravelBufferMinutes:     s.defaults.TravelBufferMinutes,
		UnknownTravelGapMinutes: s.defaults.UnknownTravelGapMinutes,
	}
	fields := settingsRepo.Fields{
		TravelBuffer:     req.TravelBufferMinutes != nil,
		UnknownTravelGap: req.UnknownTravelGapMinutes != nil,
	}
	if fields.TravelBuffer {
		next.TravelBufferMinutes = *req.TravelBufferMinutes
	}
	if fields.UnknownTravelGap {
		next.UnknownTravelGapMinutes = *req.UnknownTravelGapMinutes
	}

	now := s.clock.Now()
	next.CreatedAt = now
	next.UpdatedAt = now

	// 3. Сохраняем
	stored, err := s.repo.Upsert(ctx, next, fields)
	if err != nil {
		s.logger.Error("Update: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: owner=%s thresholds set to buffer=%d unknown_gap=%d",
		ownerID, stored.TravelBufferMinutes, stored.UnknownTravelGapMinutes)
	return models.FromDomainSettings(stored), nil
}

// Reset возвращает владельцу пороги по умолчанию
func (s *Service) Reset(ctx context.Context, ownerID string) (*models.SettingsResponse, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	if _, err := s.repo.Delete(ctx, ownerID); err != nil {
		s.logger.Error("Reset: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Reset - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reset: owner=%s thresholds reset to defaults", ownerID)
	return s.defaultsFor(ownerID), nil
}

func (s *Service) defaultsFor(ownerID string) *models.SettingsResponse {
	return &models.SettingsResponse{
		OwnerID:                 ownerID,
		TravelBufferMinutes:     s.defaults.TravelBufferMinutes,
		UnknownTravelGapMinutes: s.defaults.UnknownTravelGapMinutes,
		IsDefault:               true,
	}
}

func validateMinutes(name string, v *int, max int) error {
	if v == nil {
		return nil
	}
	if *v < 0 || *v > max {
		return fmt.Errorf("%w: %s must be in 0..%d minutes", ErrInvalidInput, name, max)
	}
	return nil
}
