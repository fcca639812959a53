package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/quitpath/internal/backend"
	"github.com/terraincognita07/quitpath/internal/models"
)

type stubQuitPlanBackend struct {
	custom        *models.QuitPlan
	customErr     error
	legacy        *models.QuitPlan
	legacyCalls   int
	coachPlans    []models.QuitPlan
	coachLoads    int
	templates     []models.PlanTemplate
	accepted      []uint
	rejected      []uint
	saved         []backend.QuitPlanInput
	created       []backend.QuitPlanInput
	fromTemplate  []backend.UserSuggestedPlanInput
	milestones    []string
	submissions   []models.DailyLogSubmission
	dailyLogReply backend.DailyLogResult
}

func (stub *stubQuitPlanBackend) CustomQuitPlan(context.Context, string) (*models.QuitPlan, error) {
	return stub.custom, stub.customErr
}

func (stub *stubQuitPlanBackend) LegacyQuitPlan(context.Context, string) (*models.QuitPlan, error) {
	stub.legacyCalls++
	return stub.legacy, nil
}

func (stub *stubQuitPlanBackend) CoachSuggestedPlans(context.Context, string) ([]models.QuitPlan, error) {
	stub.coachLoads++
	plans := make([]models.QuitPlan, len(stub.coachPlans))
	copy(plans, stub.coachPlans)
	return plans, nil
}

func (stub *stubQuitPlanBackend) SuggestedTemplates(context.Context, string) ([]models.PlanTemplate, error) {
	return stub.templates, nil
}

func (stub *stubQuitPlanBackend) AcceptCoachPlan(_ context.Context, _ string, planID uint) error {
	stub.accepted = append(stub.accepted, planID)
	stub.setCoachStatus(planID, models.CoachPlanAccepted)
	return nil
}

func (stub *stubQuitPlanBackend) RejectCoachPlan(_ context.Context, _ string, planID uint) error {
	stub.rejected = append(stub.rejected, planID)
	stub.setCoachStatus(planID, models.CoachPlanRejected)
	return nil
}

func (stub *stubQuitPlanBackend) setCoachStatus(planID uint, status string) {
	for index := range stub.coachPlans {
		if stub.coachPlans[index].ID == planID {
			stub.coachPlans[index].Status = status
		}
	}
}

func (stub *stubQuitPlanBackend) SaveQuitPlan(_ context.Context, _ string, input backend.QuitPlanInput) error {
	stub.saved = append(stub.saved, input)
	return nil
}

func (stub *stubQuitPlanBackend) CreateCustomQuitPlan(_ context.Context, _ string, input backend.QuitPlanInput) error {
	stub.created = append(stub.created, input)
	return nil
}

func (stub *stubQuitPlanBackend) CreateUserSuggestedPlan(_ context.Context, _ string, input backend.UserSuggestedPlanInput) error {
	stub.fromTemplate = append(stub.fromTemplate, input)
	return nil
}

func (stub *stubQuitPlanBackend) AddMilestone(_ context.Context, _ string, title string) error {
	stub.milestones = append(stub.milestones, title)
	return nil
}

func (stub *stubQuitPlanBackend) AddDailyLog(_ context.Context, _ string, submission models.DailyLogSubmission) (backend.DailyLogResult, error) {
	stub.submissions = append(stub.submissions, submission)
	return stub.dailyLogReply, nil
}

func TestSuggestedPlanDurationDays(t *testing.T) {
	tests := map[string]int{
		"Kế hoạch 60 ngày":   60,
		"90-day plan":        90,
		"Quick start":        30,
		"30 days to freedom": 30,
	}
	for title, want := range tests {
		if got := SuggestedPlanDurationDays(title); got != want {
			t.Fatalf("SuggestedPlanDurationDays(%q) = %d, want %d", title, got, want)
		}
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := DateKey(SuggestedPlanTargetDate(start, "60 days")); got != "2024-02-29" {
		t.Fatalf("target = %s, want 2024-02-29", got)
	}
}

func TestCreateFromTemplate(t *testing.T) {
	stub := &stubQuitPlanBackend{templates: []models.PlanTemplate{
		{ID: 1, Title: "Plan 30"},
		{ID: 2, Title: "Plan 90 days"},
	}}
	service := NewQuitPlanService(stub, time.UTC)

	if err := service.CreateFromTemplate(context.Background(), "token", 2, "2024-03-01"); err != nil {
		t.Fatalf("CreateFromTemplate() unexpected error: %v", err)
	}
	if len(stub.fromTemplate) != 1 {
		t.Fatalf("expected one plan, got %d", len(stub.fromTemplate))
	}
	got := stub.fromTemplate[0]
	if got.SuggestedPlanID != 2 || got.StartDate != "2024-03-01" || got.TargetDate != "2024-05-29" {
		t.Fatalf("unexpected template payload %#v", got)
	}

	if err := service.CreateFromTemplate(context.Background(), "token", 9, "2024-03-01"); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
	if err := service.CreateFromTemplate(context.Background(), "token", 1, ""); !errors.Is(err, ErrInvalidPlanInput) {
		t.Fatalf("expected ErrInvalidPlanInput, got %v", err)
	}
}

func TestJoinDefaultPlan(t *testing.T) {
	stub := &stubQuitPlanBackend{}
	service := NewQuitPlanService(stub, time.UTC)

	now := time.Date(2024, 1, 31, 22, 0, 0, 0, time.UTC)
	if err := service.JoinDefaultPlan(context.Background(), "token", 15, now); err != nil {
		t.Fatalf("JoinDefaultPlan() unexpected error: %v", err)
	}
	got := stub.saved[0]
	if got.StartDate != "2024-01-31" || got.TargetDate != "2024-03-02" {
		t.Fatalf("unexpected window %s..%s", got.StartDate, got.TargetDate)
	}
	if got.PlanType != "suggested" || got.InitialCigarettes != 15 || got.DailyReduction != 0 {
		t.Fatalf("unexpected default plan %#v", got)
	}
}

func TestCreateCustomPlanValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CustomPlanInput
	}{
		{name: "missing start", input: CustomPlanInput{TargetDate: "2024-02-01", PlanDetail: "x"}},
		{name: "target before start", input: CustomPlanInput{StartDate: "2024-02-01", TargetDate: "2024-01-01", PlanDetail: "x"}},
		{name: "negative reduction", input: CustomPlanInput{StartDate: "2024-01-01", TargetDate: "2024-02-01", DailyReduction: -1, PlanDetail: "x"}},
		{name: "empty detail", input: CustomPlanInput{StartDate: "2024-01-01", TargetDate: "2024-02-01", PlanDetail: "  "}},
	}

	stub := &stubQuitPlanBackend{}
	service := NewQuitPlanService(stub, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := service.CreateCustomPlan(context.Background(), "token", tt.input); !errors.Is(err, ErrInvalidPlanInput) {
				t.Fatalf("expected ErrInvalidPlanInput, got %v", err)
			}
		})
	}
	if len(stub.created) != 0 {
		t.Fatalf("did not expect writes, got %d", len(stub.created))
	}

	valid := CustomPlanInput{StartDate: "2024-01-01", TargetDate: "2024-01-31", InitialCigarettes: 10, DailyReduction: 0.5, PlanDetail: " taper "}
	if err := service.CreateCustomPlan(context.Background(), "token", valid); err != nil {
		t.Fatalf("CreateCustomPlan() unexpected error: %v", err)
	}
	if stub.created[0].PlanDetail != "taper" {
		t.Fatalf("expected trimmed detail, got %q", stub.created[0].PlanDetail)
	}
}

func TestCurrentPlanFallsBackToLegacyOnlyWithoutCustom(t *testing.T) {
	stub := &stubQuitPlanBackend{custom: &models.QuitPlan{ID: 1}, legacy: &models.QuitPlan{ID: 2}}
	service := NewQuitPlanService(stub, time.UTC)

	plan, err := service.CurrentPlan(context.Background(), "token")
	if err != nil || plan == nil || plan.ID != 1 {
		t.Fatalf("expected custom plan, got %#v (%v)", plan, err)
	}
	if stub.legacyCalls != 0 {
		t.Fatal("did not expect legacy lookup")
	}

	stub.custom = nil
	plan, err = service.CurrentPlan(context.Background(), "token")
	if err != nil || plan == nil || plan.ID != 2 {
		t.Fatalf("expected legacy plan, got %#v (%v)", plan, err)
	}
}

func TestUpdateCurrentPlanRequiresExistingPlan(t *testing.T) {
	stub := &stubQuitPlanBackend{}
	service := NewQuitPlanService(stub, time.UTC)
	input := CustomPlanInput{StartDate: "2024-01-01", TargetDate: "2024-01-31", PlanDetail: "x"}

	if err := service.UpdateCurrentPlan(context.Background(), "token", input); !errors.Is(err, ErrNoPlanToUpdate) {
		t.Fatalf("expected ErrNoPlanToUpdate, got %v", err)
	}

	stub.custom = &models.QuitPlan{ID: 4, PlanType: "custom"}
	if err := service.UpdateCurrentPlan(context.Background(), "token", input); err != nil {
		t.Fatalf("UpdateCurrentPlan() unexpected error: %v", err)
	}
	if len(stub.saved) != 1 || stub.saved[0].PlanType != "custom" {
		t.Fatalf("unexpected saved plans %#v", stub.saved)
	}
}

func TestAddMilestoneRejectsBlankTitle(t *testing.T) {
	stub := &stubQuitPlanBackend{}
	service := NewQuitPlanService(stub, time.UTC)

	if err := service.AddMilestone(context.Background(), "token", "   "); !errors.Is(err, ErrEmptyMilestone) {
		t.Fatalf("expected ErrEmptyMilestone, got %v", err)
	}
	if err := service.AddMilestone(context.Background(), "token", " One week "); err != nil {
		t.Fatalf("AddMilestone() unexpected error: %v", err)
	}
	if len(stub.milestones) != 1 || stub.milestones[0] != "One week" {
		t.Fatalf("unexpected milestones %#v", stub.milestones)
	}
}

func TestRespondToCoachPlanMovesPlanOutOfPending(t *testing.T) {
	stub := &stubQuitPlanBackend{coachPlans: []models.QuitPlan{
		{ID: 3, Status: "accepted", CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: 8, Status: "pending", CreatedAt: "2024-02-01T00:00:00Z"},
	}}
	service := NewQuitPlanService(stub, time.UTC)

	if err := service.RespondToCoachPlan(context.Background(), "token", 8, true); err != nil {
		t.Fatalf("RespondToCoachPlan() unexpected error: %v", err)
	}
	if len(stub.accepted) != 1 || stub.accepted[0] != 8 {
		t.Fatalf("expected accept call for plan 8, got %#v", stub.accepted)
	}
	if stub.coachLoads != 1 {
		t.Fatalf("expected one plan list load, got %d", stub.coachLoads)
	}

	plans, _ := stub.CoachSuggestedPlans(context.Background(), "token")
	if len(PendingCoachPlans(plans)) != 0 {
		t.Fatal("expected no pending plans after accepting")
	}
	if latest := LatestCoachPlan(plans); latest == nil || latest.ID != 8 {
		t.Fatalf("expected plan 8 to become latest, got %#v", latest)
	}

	if err := service.RespondToCoachPlan(context.Background(), "token", 8, false); !errors.Is(err, ErrCoachPlanResponded) {
		t.Fatalf("expected ErrCoachPlanResponded, got %v", err)
	}
	if err := service.RespondToCoachPlan(context.Background(), "token", 99, false); !errors.Is(err, ErrCoachPlanNotFound) {
		t.Fatalf("expected ErrCoachPlanNotFound, got %v", err)
	}
	if len(stub.rejected) != 0 {
		t.Fatalf("did not expect reject calls, got %#v", stub.rejected)
	}
}

func TestSubmitDailyLogCarriesExactlyOnePlanTag(t *testing.T) {
	stub := &stubQuitPlanBackend{dailyLogReply: backend.DailyLogResult{NewBadges: []models.Badge{{ID: 1}}}}
	service := NewQuitPlanService(stub, time.FixedZone("ICT", 7*60*60))
	available := AvailableLogPlans(&models.QuitPlan{ID: 1}, &models.QuitPlan{ID: 2}, []models.QuitPlan{
		{ID: 3, Status: "accepted"},
	})

	now := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	result, err := service.SubmitDailyLog(context.Background(), "token", available, DailyLogInput{Cigarettes: 2, Feeling: " fine ", Plan: "suggested-2"}, now)
	if err != nil {
		t.Fatalf("SubmitDailyLog() unexpected error: %v", err)
	}
	if len(result.NewBadges) != 1 {
		t.Fatalf("expected badge to be passed through, got %#v", result)
	}

	submission := stub.submissions[0]
	if submission.LogDate != "2024-05-02" || submission.Feeling != "fine" {
		t.Fatalf("unexpected submission %#v", submission)
	}

	raw, err := json.Marshal(submission)
	if err != nil {
		t.Fatalf("marshal submission: %v", err)
	}
	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode submission: %v", err)
	}
	if payload["suggestedPlanId"] != float64(2) {
		t.Fatalf("expected suggestedPlanId=2, got %v", payload)
	}
	if _, ok := payload["planId"]; ok {
		t.Fatalf("did not expect planId in %s", raw)
	}
	if _, ok := payload["coachSuggestedPlanId"]; ok {
		t.Fatalf("did not expect coachSuggestedPlanId in %s", raw)
	}

	if _, err := service.SubmitDailyLog(context.Background(), "token", available, DailyLogInput{Cigarettes: -1}, now); !errors.Is(err, ErrInvalidDailyLog) {
		t.Fatalf("expected ErrInvalidDailyLog, got %v", err)
	}
	if _, err := service.SubmitDailyLog(context.Background(), "token", available, DailyLogInput{Plan: "coach-9"}, now); !errors.Is(err, ErrPlanNotAvailable) {
		t.Fatalf("expected ErrPlanNotAvailable, got %v", err)
	}
}
