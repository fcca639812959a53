package models

import (
	"fmt"
	"strings"
)

type PlanKind string

const (
	PlanKindCustom    PlanKind = "custom"
	PlanKindSuggested PlanKind = "suggested"
	PlanKindCoach     PlanKind = "coach"
)

const (
	CoachPlanPending  = "pending"
	CoachPlanAccepted = "accepted"
	CoachPlanRejected = "rejected"
)

// QuitPlan covers all three plan variants. Kind is assigned by the
// frontend from the endpoint the plan came from and is never decoded.
type QuitPlan struct {
	ID                uint     `json:"id"`
	Kind              PlanKind `json:"-"`
	Title             string   `json:"title,omitempty"`
	Description       string   `json:"description,omitempty"`
	StartDate         string   `json:"startDate"`
	TargetDate        string   `json:"targetDate"`
	InitialCigarettes int      `json:"initialCigarettes"`
	DailyReduction    float64  `json:"dailyReduction"`
	PlanDetail        string   `json:"planDetail"`
	PlanType          string   `json:"planType,omitempty"`
	Status            string   `json:"status,omitempty"`
	CreatedAt         string   `json:"createdAt,omitempty"`
}

func (plan QuitPlan) HasDates() bool {
	return strings.TrimSpace(plan.StartDate) != "" && strings.TrimSpace(plan.TargetDate) != ""
}

func (plan QuitPlan) IsPendingCoachPlan() bool {
	status := strings.ToLower(strings.TrimSpace(plan.Status))
	return status == "" || status == CoachPlanPending
}

func (plan QuitPlan) IsAcceptedCoachPlan() bool {
	return strings.EqualFold(strings.TrimSpace(plan.Status), CoachPlanAccepted)
}

func (plan QuitPlan) Ref() PlanRef {
	return PlanRef{Kind: plan.Kind, ID: plan.ID}
}

// PlanRef identifies the plan a daily log is attributed to. Exactly one
// variant is ever set, which keeps the three backend tags exclusive.
type PlanRef struct {
	Kind PlanKind
	ID   uint
}

func (ref PlanRef) IsZero() bool {
	return ref.Kind == "" || ref.ID == 0
}

func (ref PlanRef) String() string {
	if ref.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s-%d", ref.Kind, ref.ID)
}

// PlanTemplate is a system-authored plan a member can instantiate with
// their own start date.
type PlanTemplate struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PlanDetail  string `json:"planDetail"`
}
