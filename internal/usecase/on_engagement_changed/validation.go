package on_engagement_changed

import (
	"fmt"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil || req.Engagement == nil {
		return fmt.Errorf("%w: engagement is required", ErrInvalidInput)
	}

	if req.OwnerID == "" || len(req.OwnerID) > domain.MaxIDLength {
		return fmt.Errorf("%w: ownerID is required and must be at most %d characters", ErrInvalidInput, domain.MaxIDLength)
	}

	e := req.Engagement

	if err := domain.ValidateEngagementID(e.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Обязательства сравниваются только в пределах одного владельца
	if e.OwnerID != req.OwnerID {
		return fmt.Errorf("%w: engagement belongs to another owner", ErrInvalidInput)
	}

	if !e.Kind.IsValid() {
		return fmt.Errorf("%w: unknown engagement kind %q", ErrInvalidInput, e.Kind)
	}

	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if e.StartTime != nil && !e.StartTime.IsZero() {
		if err := e.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	if e.EndTime != nil && !e.EndTime.IsZero() {
		if err := e.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// validateOptions приводит параметры к допустимым значениям
func validateOptions(opts Options) Options {
	if opts.ScanWindowDays < 0 {
		opts.ScanWindowDays = 0
	}
	if opts.ScanWindowDays > domain.MaxScanWindowDays {
		opts.ScanWindowDays = domain.MaxScanWindowDays
	}
	if opts.MaxParallelEstimates <= 0 {
		opts.MaxParallelEstimates = domain.DefaultMaxParallelEstimates
	}
	return opts
}
