package models

import (
	"encoding/json"
	"strings"
)

const DateKeyLength = len("2006-01-02")

type DailyLogEntry struct {
	ID         uint   `json:"id,omitempty"`
	Date       string `json:"date"`
	Cigarettes int    `json:"cigarettes"`
	Feeling    string `json:"feeling"`
}

// DateKey is the calendar date the entry belongs to, taken from the
// first ten characters of the backend timestamp.
func (entry DailyLogEntry) DateKey() string {
	raw := strings.TrimSpace(entry.Date)
	if len(raw) < DateKeyLength {
		return raw
	}
	return raw[:DateKeyLength]
}

type DailyLogSubmission struct {
	Cigarettes int
	Feeling    string
	LogDate    string
	Plan       PlanRef
}

type dailyLogSubmissionPayload struct {
	Cigarettes           int    `json:"cigarettes"`
	Feeling              string `json:"feeling"`
	LogDate              string `json:"logDate"`
	PlanID               uint   `json:"planId,omitempty"`
	SuggestedPlanID      uint   `json:"suggestedPlanId,omitempty"`
	CoachSuggestedPlanID uint   `json:"coachSuggestedPlanId,omitempty"`
}

func (submission DailyLogSubmission) MarshalJSON() ([]byte, error) {
	payload := dailyLogSubmissionPayload{
		Cigarettes: submission.Cigarettes,
		Feeling:    submission.Feeling,
		LogDate:    submission.LogDate,
	}
	if !submission.Plan.IsZero() {
		switch submission.Plan.Kind {
		case PlanKindCustom:
			payload.PlanID = submission.Plan.ID
		case PlanKindSuggested:
			payload.SuggestedPlanID = submission.Plan.ID
		case PlanKindCoach:
			payload.CoachSuggestedPlanID = submission.Plan.ID
		}
	}
	return json.Marshal(payload)
}
