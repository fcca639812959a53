package services

import (
	"context"
	"errors"
	"testing"

	"github.com/terraincognita07/quitpath/internal/models"
)

type stubSmokingStatusBackend struct {
	profile    models.Profile
	profileErr error
	updateErr  error
	updated    []models.SmokingStatus
}

func (stub *stubSmokingStatusBackend) Profile(context.Context, string) (models.Profile, error) {
	return stub.profile, stub.profileErr
}

func (stub *stubSmokingStatusBackend) UpdateSmokingStatus(_ context.Context, _ string, status models.SmokingStatus) error {
	stub.updated = append(stub.updated, status)
	return stub.updateErr
}

func currentStatusFixture() models.SmokingStatus {
	return models.SmokingStatus{
		CigarettesPerDay:    12,
		CostPerPack:         30000,
		SmokingFrequency:    "daily",
		CigaretteType:       models.CigaretteTypeOther,
		CustomCigaretteType: "Hand rolled",
		QuitReason:          "health",
		DailyLog:            models.DailyLogSnapshot{Cigarettes: 3, Feeling: "ok"},
	}
}

func TestApplySmokingStatusField(t *testing.T) {
	current := currentStatusFixture()

	tests := []struct {
		name    string
		field   string
		value   string
		check   func(models.SmokingStatus) bool
		wantErr error
	}{
		{
			name:  "cigarettes per day",
			field: "cigarettesPerDay",
			value: " 8 ",
			check: func(status models.SmokingStatus) bool { return status.CigarettesPerDay == 8 },
		},
		{
			name:  "cost per pack",
			field: "costPerPack",
			value: "25000.5",
			check: func(status models.SmokingStatus) bool { return status.CostPerPack == 25000.5 },
		},
		{
			name:  "brand clears custom type",
			field: "cigaretteType",
			value: "Marlboro",
			check: func(status models.SmokingStatus) bool {
				return status.CigaretteType == "Marlboro" && status.CustomCigaretteType == ""
			},
		},
		{
			name:  "other keeps custom type",
			field: "cigaretteType",
			value: "other",
			check: func(status models.SmokingStatus) bool { return status.CustomCigaretteType == "Hand rolled" },
		},
		{
			name:    "negative count",
			field:   "cigarettesPerDay",
			value:   "-1",
			wantErr: ErrInvalidStatusValue,
		},
		{
			name:    "unknown field",
			field:   "dailyLog",
			value:   "1",
			wantErr: ErrInvalidStatusField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplySmokingStatusField(current, tt.field, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if got != current {
					t.Fatalf("expected status unchanged on error, got %#v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(got) {
				t.Fatalf("unexpected status %#v", got)
			}
			if got.DailyLog != current.DailyLog {
				t.Fatal("expected daily log snapshot to be untouched")
			}
		})
	}
}

func TestSmokingStatusUpdateFieldKeepsEditOnWriteFailure(t *testing.T) {
	writeErr := errors.New("backend down")
	backend := &stubSmokingStatusBackend{
		profile:   models.Profile{SmokingStatus: currentStatusFixture()},
		updateErr: writeErr,
	}
	service := NewSmokingStatusService(backend)

	got, err := service.UpdateField(context.Background(), "token", "quitReason", "family")
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}
	if got.QuitReason != "family" {
		t.Fatalf("expected edited value to be returned, got %q", got.QuitReason)
	}
	if len(backend.updated) != 1 {
		t.Fatalf("expected one write, got %d", len(backend.updated))
	}
	sent := backend.updated[0]
	if sent.CigarettesPerDay != 12 || sent.CostPerPack != 30000 || sent.QuitReason != "family" {
		t.Fatalf("expected full object to be written, got %#v", sent)
	}
}

func TestSmokingStatusUpdateFieldFailsWithoutProfile(t *testing.T) {
	backend := &stubSmokingStatusBackend{profileErr: errors.New("unavailable")}
	service := NewSmokingStatusService(backend)

	if _, err := service.UpdateField(context.Background(), "token", "quitReason", "family"); !errors.Is(err, ErrSmokingStatusUnavailable) {
		t.Fatalf("expected ErrSmokingStatusUnavailable, got %v", err)
	}
	if len(backend.updated) != 0 {
		t.Fatal("did not expect a write")
	}
}

func TestSmokingStatusReplaceCarriesDailyLog(t *testing.T) {
	backend := &stubSmokingStatusBackend{profile: models.Profile{SmokingStatus: currentStatusFixture()}}
	service := NewSmokingStatusService(backend)

	form := models.SmokingStatus{
		CigarettesPerDay:    -4,
		CostPerPack:         18000,
		SmokingFrequency:    " weekly ",
		CigaretteType:       "Vinataba",
		CustomCigaretteType: "stale",
	}
	got, err := service.Replace(context.Background(), "token", form)
	if err != nil {
		t.Fatalf("Replace() unexpected error: %v", err)
	}
	if got.CigarettesPerDay != 0 || got.SmokingFrequency != "weekly" || got.CustomCigaretteType != "" {
		t.Fatalf("unexpected normalized status %#v", got)
	}
	if got.DailyLog.Cigarettes != 3 {
		t.Fatalf("expected daily log snapshot to carry over, got %#v", got.DailyLog)
	}
}

func TestSmokingStatusReplaceSkipsWriteWithoutProfile(t *testing.T) {
	profileErr := errors.New("unavailable")
	backend := &stubSmokingStatusBackend{profileErr: profileErr}
	service := NewSmokingStatusService(backend)

	got, err := service.Replace(context.Background(), "token", models.SmokingStatus{CigarettesPerDay: 7, QuitReason: " kids "})
	if !errors.Is(err, ErrSmokingStatusUnavailable) || !errors.Is(err, profileErr) {
		t.Fatalf("expected wrapped profile error, got %v", err)
	}
	if len(backend.updated) != 0 {
		t.Fatalf("did not expect a write, got %d", len(backend.updated))
	}
	if got.CigarettesPerDay != 7 || got.QuitReason != "kids" {
		t.Fatalf("expected the entered form back, got %#v", got)
	}
}
