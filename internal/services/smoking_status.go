package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/terraincognita07/quitpath/internal/models"
)

var (
	ErrInvalidStatusField       = errors.New("invalid smoking status field")
	ErrInvalidStatusValue       = errors.New("invalid smoking status value")
	ErrSmokingStatusUnavailable = errors.New("smoking status could not be loaded")
)

type SmokingStatusBackend interface {
	Profile(ctx context.Context, token string) (models.Profile, error)
	UpdateSmokingStatus(ctx context.Context, token string, status models.SmokingStatus) error
}

type SmokingStatusService struct {
	backend SmokingStatusBackend
}

func NewSmokingStatusService(backend SmokingStatusBackend) *SmokingStatusService {
	return &SmokingStatusService{backend: backend}
}

// ApplySmokingStatusField returns current with one field replaced.
func ApplySmokingStatusField(current models.SmokingStatus, field string, value string) (models.SmokingStatus, error) {
	updated := current
	trimmed := strings.TrimSpace(value)

	switch strings.TrimSpace(field) {
	case "cigarettesPerDay":
		parsed, err := parseNonNegativeInt(trimmed)
		if err != nil {
			return current, err
		}
		updated.CigarettesPerDay = parsed
	case "costPerPack":
		parsed, err := parseNonNegativeFloat(trimmed)
		if err != nil {
			return current, err
		}
		updated.CostPerPack = parsed
	case "smokingFrequency":
		updated.SmokingFrequency = trimmed
	case "healthStatus":
		updated.HealthStatus = trimmed
	case "cigaretteType":
		updated.CigaretteType = trimmed
		if trimmed != models.CigaretteTypeOther {
			updated.CustomCigaretteType = ""
		}
	case "customCigaretteType":
		updated.CustomCigaretteType = trimmed
	case "quitReason":
		updated.QuitReason = trimmed
	default:
		return current, fmt.Errorf("%w: %q", ErrInvalidStatusField, field)
	}
	return updated, nil
}

// ApplySmokingStatusForm replaces every editable field at once. The
// embedded daily-log snapshot is carried over from current.
func ApplySmokingStatusForm(current models.SmokingStatus, form models.SmokingStatus) models.SmokingStatus {
	updated := form
	updated.DailyLog = current.DailyLog
	updated.SmokingFrequency = strings.TrimSpace(updated.SmokingFrequency)
	updated.HealthStatus = strings.TrimSpace(updated.HealthStatus)
	updated.CigaretteType = strings.TrimSpace(updated.CigaretteType)
	updated.CustomCigaretteType = strings.TrimSpace(updated.CustomCigaretteType)
	updated.QuitReason = strings.TrimSpace(updated.QuitReason)
	if updated.CigaretteType != models.CigaretteTypeOther {
		updated.CustomCigaretteType = ""
	}
	if updated.CigarettesPerDay < 0 {
		updated.CigarettesPerDay = 0
	}
	if updated.CostPerPack < 0 {
		updated.CostPerPack = 0
	}
	return updated
}

// UpdateField applies a single-field edit on top of the stored status and
// writes the full object back. The edited status is returned even when
// the write fails so the caller can keep showing it. When the stored status
// cannot be read nothing is written and the error wraps
// ErrSmokingStatusUnavailable.
func (service *SmokingStatusService) UpdateField(ctx context.Context, token string, field string, value string) (models.SmokingStatus, error) {
	profile, err := service.backend.Profile(ctx, token)
	if err != nil {
		return models.SmokingStatus{}, fmt.Errorf("%w: %w", ErrSmokingStatusUnavailable, err)
	}
	updated, err := ApplySmokingStatusField(profile.SmokingStatus, field, value)
	if err != nil {
		return profile.SmokingStatus, err
	}
	return updated, service.backend.UpdateSmokingStatus(ctx, token, updated)
}

// Replace writes the whole form over the stored status. The form is
// returned as entered when the stored status cannot be read, and nothing
// is written in that case.
func (service *SmokingStatusService) Replace(ctx context.Context, token string, form models.SmokingStatus) (models.SmokingStatus, error) {
	profile, err := service.backend.Profile(ctx, token)
	if err != nil {
		return ApplySmokingStatusForm(models.SmokingStatus{}, form), fmt.Errorf("%w: %w", ErrSmokingStatusUnavailable, err)
	}
	updated := ApplySmokingStatusForm(profile.SmokingStatus, form)
	return updated, service.backend.UpdateSmokingStatus(ctx, token, updated)
}

func parseNonNegativeInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return 0, ErrInvalidStatusValue
	}
	return parsed, nil
}

func parseNonNegativeFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 {
		return 0, ErrInvalidStatusValue
	}
	return parsed, nil
}
