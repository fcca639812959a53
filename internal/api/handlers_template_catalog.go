package api

var pageTemplates = []string{
	"login",
	"home",
	"unauthorized",
	"coach_members",
	"coach_member_progress",
	"my_progress",
	"progress_history",
	"not_found",
}

// sharedTemplateFiles are parsed into every page alongside base.html.
var sharedTemplateFiles = []string{"sidebar.html", "vip_modal.html", "chart.html", "plan_card.html"}
