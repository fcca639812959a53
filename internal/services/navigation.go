package services

import "github.com/terraincognita07/quitpath/internal/models"

type NavItem struct {
	Path         string
	LabelKey     string
	Icon         string
	VIPOnly      bool
	OpensUpgrade bool
}

type SidebarVariant string

const (
	SidebarNone  SidebarVariant = ""
	SidebarAdmin SidebarVariant = "admin"
	SidebarUser  SidebarVariant = "user"
)

var adminNavItems = []NavItem{
	{Path: "/admin/users", LabelKey: "nav.admin.users", Icon: "users"},
	{Path: "/admin/packages", LabelKey: "nav.admin.packages", Icon: "package"},
	{Path: "/admin/posts", LabelKey: "nav.admin.posts", Icon: "file-text"},
	{Path: "/admin/statistics", LabelKey: "nav.admin.statistics", Icon: "bar-chart"},
	{Path: "/admin/feedback", LabelKey: "nav.admin.feedback", Icon: "message-square"},
}

var coachNavItems = []NavItem{
	{Path: "/profile", LabelKey: "nav.profile", Icon: "user"},
	{Path: "/coach/chat-list", LabelKey: "nav.coach.chat", Icon: "message-circle"},
	{Path: "/coach/member-progress", LabelKey: "nav.coach.member_progress", Icon: "trending-up"},
	{Path: "/coach/dashboard", LabelKey: "nav.coach.dashboard", Icon: "layout"},
	{Path: "/coach/feedback", LabelKey: "nav.coach.feedback", Icon: "star"},
}

// VIPBenefitKeys lists the message keys shown wherever the upgrade is offered.
var VIPBenefitKeys = []string{
	"vip.benefit.coach",
	"vip.benefit.community",
	"vip.benefit.plans",
	"vip.benefit.reports",
}

func SidebarVariantFor(role string) SidebarVariant {
	switch models.NormalizeRole(role) {
	case models.RoleAdmin:
		return SidebarAdmin
	case models.RoleMember, models.RoleMemberVIP, models.RoleCoach:
		return SidebarUser
	default:
		return SidebarNone
	}
}

// SidebarItems returns the ordered menu for a role. Plain members get the
// create-post entry too, but it opens the upgrade dialog instead of linking.
func SidebarItems(role string, isVIP bool) []NavItem {
	normalized := models.NormalizeRole(role)
	if normalized == models.RoleMember && isVIP {
		normalized = models.RoleMemberVIP
	}

	switch normalized {
	case models.RoleAdmin:
		return cloneNavItems(adminNavItems)
	case models.RoleCoach:
		return cloneNavItems(coachNavItems)
	case models.RoleMember, models.RoleMemberVIP:
		return memberNavItems(normalized == models.RoleMemberVIP)
	default:
		return []NavItem{}
	}
}

func memberNavItems(vip bool) []NavItem {
	createPost := NavItem{Path: "/create-post", LabelKey: "nav.member.create_post", Icon: "edit"}
	if !vip {
		createPost.VIPOnly = true
		createPost.OpensUpgrade = true
	}

	items := []NavItem{
		{Path: "/profile", LabelKey: "nav.profile", Icon: "user"},
		{Path: "/chat-coach", LabelKey: "nav.member.chat_coach", Icon: "message-circle"},
		{Path: "/my-progress", LabelKey: "nav.member.my_progress", Icon: "trending-up"},
		{Path: "/booking", LabelKey: "nav.member.booking", Icon: "calendar"},
		createPost,
		{Path: "/achievements", LabelKey: "nav.member.achievements", Icon: "award"},
	}
	if vip {
		items = append(items, NavItem{Path: "/feedback-coach", LabelKey: "nav.member.rate_coach", Icon: "star"})
	}
	return items
}

func cloneNavItems(items []NavItem) []NavItem {
	cloned := make([]NavItem, len(items))
	copy(cloned, items)
	return cloned
}

func RoleLabelKey(role string) string {
	switch models.NormalizeRole(role) {
	case models.RoleMemberVIP:
		return "role.member_vip"
	case models.RoleAdmin:
		return "role.admin"
	case models.RoleCoach:
		return "role.coach"
	case models.RoleMember:
		return "role.member"
	default:
		return "role.guest"
	}
}

// LandingPath is where a freshly signed-in user is sent.
func LandingPath(role string) string {
	switch models.NormalizeRole(role) {
	case models.RoleMember, models.RoleMemberVIP:
		return "/my-progress"
	case models.RoleCoach:
		return "/coach/member-progress"
	default:
		return "/"
	}
}
