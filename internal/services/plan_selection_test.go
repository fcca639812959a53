package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/quitpath/internal/models"
)

func TestParsePlanRef(t *testing.T) {
	tests := []struct {
		raw     string
		want    models.PlanRef
		wantErr bool
	}{
		{raw: "custom-3", want: models.PlanRef{Kind: models.PlanKindCustom, ID: 3}},
		{raw: " coach-12 ", want: models.PlanRef{Kind: models.PlanKindCoach, ID: 12}},
		{raw: "suggested-7", want: models.PlanRef{Kind: models.PlanKindSuggested, ID: 7}},
		{raw: "custom-0", wantErr: true},
		{raw: "system-1", wantErr: true},
		{raw: "7", wantErr: true},
		{raw: "coach-x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePlanRef(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPlanRef) {
					t.Fatalf("expected ErrInvalidPlanRef, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePlanRef() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParsePlanRef() = %#v, want %#v", got, tt.want)
			}
			if got.String() != tt.want.String() {
				t.Fatalf("String() = %q", got.String())
			}
		})
	}
}

func coachPlansFixture() []models.QuitPlan {
	return []models.QuitPlan{
		{ID: 3, Status: "accepted", CreatedAt: "2024-01-01"},
		{ID: 4, Status: "ACCEPTED", CreatedAt: "2024-02-01T10:00:00Z"},
		{ID: 5, Status: "", CreatedAt: "2024-03-01T10:00:00Z"},
		{ID: 6, Status: "pending", CreatedAt: "2024-03-02T10:00:00Z"},
		{ID: 7, Status: "rejected", CreatedAt: "2024-04-01T10:00:00Z"},
	}
}

func TestPendingAndLatestCoachPlans(t *testing.T) {
	plans := coachPlansFixture()

	pending := PendingCoachPlans(plans)
	if len(pending) != 2 || pending[0].ID != 5 || pending[1].ID != 6 {
		t.Fatalf("unexpected pending plans %#v", pending)
	}

	latest := LatestCoachPlan(plans)
	if latest == nil || latest.ID != 4 {
		t.Fatalf("expected plan 4 as latest accepted, got %#v", latest)
	}

	plans[1].Status = "accepted"
	plans[2].Status = "accepted"
	if latest := LatestCoachPlan(plans); latest == nil || latest.ID != 5 {
		t.Fatalf("expected newly accepted plan 5 as latest, got %#v", latest)
	}
	if LatestCoachPlan(nil) != nil {
		t.Fatal("expected no latest plan for empty list")
	}
}

func TestAvailableLogPlansOrderAndDefault(t *testing.T) {
	custom := &models.QuitPlan{ID: 1}
	suggested := &models.QuitPlan{ID: 2}

	available := AvailableLogPlans(custom, suggested, coachPlansFixture())
	got := make([]string, 0, len(available))
	for _, plan := range available {
		got = append(got, plan.Ref().String())
	}
	want := []string{"custom-1", "suggested-2", "coach-4"}
	if len(got) != len(want) {
		t.Fatalf("available = %v, want %v", got, want)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Fatalf("available = %v, want %v", got, want)
		}
	}

	if ref := DefaultLogPlan(available); ref.String() != "custom-1" {
		t.Fatalf("default = %s, want custom-1", ref)
	}
	onlyCoach := AvailableLogPlans(nil, nil, coachPlansFixture())
	if ref := DefaultLogPlan(onlyCoach); ref.String() != "coach-4" {
		t.Fatalf("default = %s, want coach-4", ref)
	}
	if ref := DefaultLogPlan(nil); !ref.IsZero() {
		t.Fatalf("expected zero ref, got %s", ref)
	}
}

func TestResolveLogPlan(t *testing.T) {
	available := AvailableLogPlans(&models.QuitPlan{ID: 1}, nil, coachPlansFixture())

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "empty uses default", raw: "", want: "custom-1"},
		{name: "explicit coach", raw: "coach-4", want: "coach-4"},
		{name: "older coach plan", raw: "coach-3", wantErr: ErrPlanNotAvailable},
		{name: "missing suggested", raw: "suggested-2", wantErr: ErrPlanNotAvailable},
		{name: "malformed", raw: "plan", wantErr: ErrInvalidPlanRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveLogPlan(available, tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("ResolveLogPlan() = %s, want %s", got, tt.want)
			}
		})
	}
}
