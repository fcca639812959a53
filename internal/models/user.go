package models

import "strings"

const (
	RoleAdmin     = "admin"
	RoleCoach     = "coach"
	RoleMember    = "member"
	RoleMemberVIP = "memberVip"
	RoleGuest     = "guest"
)

// User is the identity the backend returns at login. Role is the only
// authorization signal the frontend reads from it.
type User struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	IsMemberVIP bool   `json:"isMemberVip,omitempty"`
}

func NormalizeRole(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin
	case "coach":
		return RoleCoach
	case "member":
		return RoleMember
	case "membervip":
		return RoleMemberVIP
	default:
		return RoleGuest
	}
}

func (user *User) NormalizedRole() string {
	if user == nil {
		return RoleGuest
	}
	return NormalizeRole(user.Role)
}

func (user *User) IsVIP() bool {
	if user == nil {
		return false
	}
	return user.NormalizedRole() == RoleMemberVIP || user.IsMemberVIP
}

func (user *User) IsMember() bool {
	role := user.NormalizedRole()
	return role == RoleMember || role == RoleMemberVIP
}

func (user *User) DisplayName() string {
	if user == nil {
		return ""
	}
	if name := strings.TrimSpace(user.Username); name != "" {
		return name
	}
	return strings.TrimSpace(user.Email)
}
