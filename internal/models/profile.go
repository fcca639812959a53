package models

type Badge struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type CoachInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Profile struct {
	ID                       uint          `json:"id"`
	Username                 string        `json:"username"`
	Email                    string        `json:"email"`
	Role                     string        `json:"role"`
	SmokingStatus            SmokingStatus `json:"smokingStatus"`
	Achievements             []Badge       `json:"achievements"`
	IsMemberVIP              bool          `json:"isMemberVip"`
	Coach                    *CoachInfo    `json:"coach"`
	CurrentUserSuggestedPlan *QuitPlan     `json:"currentUserSuggestedPlan"`
}

type Appointment struct {
	SlotDate string `json:"slotDate"`
}

// Member is an entry of a coach's assigned-members set.
type Member struct {
	ID          uint         `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	Appointment *Appointment `json:"appointment,omitempty"`
}

type MemberProgress struct {
	History        []DailyLogEntry `json:"history"`
	SmokingProfile *SmokingStatus  `json:"smokingProfile"`
	CoachQuitPlan  *QuitPlan       `json:"coachQuitPlan"`
	SystemQuitPlan *QuitPlan       `json:"systemQuitPlan"`
}
