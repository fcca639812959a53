package api

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/models"
	"github.com/terraincognita07/quitpath/internal/services"
)

const (
	sidebarQueryKey   = "sidebar"
	sidebarOpenValue  = "open"
	upgradeQueryKey   = "upgrade"
	upgradeQueryValue = "1"
)

type sidebarLink struct {
	Href     string
	LabelKey string
	Icon     string
	Active   bool
	VIPOnly  bool
	Upgrade  bool
}

type sidebarView struct {
	Variant      services.SidebarVariant
	Open         bool
	ToggleHref   string
	Links        []sidebarLink
	RoleLabelKey string
	DisplayName  string
}

type upgradeModalView struct {
	Open        bool
	LaterHref   string
	UpgradePath string
}

func buildSidebarView(c *fiber.Ctx, user *models.User) sidebarView {
	query := currentQuery(c)
	path := c.Path()
	open := query.Get(sidebarQueryKey) == sidebarOpenValue

	toggleQuery := withoutQueryKeys(query, sidebarQueryKey)
	if !open {
		toggleQuery.Set(sidebarQueryKey, sidebarOpenValue)
	}

	view := sidebarView{
		Open:         open,
		ToggleHref:   pathWithQuery(path, toggleQuery),
		RoleLabelKey: services.RoleLabelKey(models.RoleGuest),
	}
	if user == nil {
		return view
	}

	role := user.NormalizedRole()
	view.Variant = services.SidebarVariantFor(role)
	view.RoleLabelKey = services.RoleLabelKey(role)
	if role == models.RoleMember && user.IsVIP() {
		view.RoleLabelKey = services.RoleLabelKey(models.RoleMemberVIP)
	}
	view.DisplayName = user.DisplayName()

	upgradeQuery := withoutQueryKeys(query, sidebarQueryKey)
	upgradeQuery.Set(upgradeQueryKey, upgradeQueryValue)
	upgradeHref := pathWithQuery(path, upgradeQuery)

	for _, item := range services.SidebarItems(role, user.IsVIP()) {
		link := sidebarLink{
			Href:     item.Path,
			LabelKey: item.LabelKey,
			Icon:     item.Icon,
			Active:   isActiveTemplateRoute(path, item.Path),
			VIPOnly:  item.VIPOnly,
			Upgrade:  item.OpensUpgrade,
		}
		if item.OpensUpgrade {
			link.Href = upgradeHref
			link.Active = false
		}
		view.Links = append(view.Links, link)
	}
	return view
}

func buildUpgradeModalView(c *fiber.Ctx, upgradePath string) upgradeModalView {
	query := currentQuery(c)
	return upgradeModalView{
		Open:        query.Get(upgradeQueryKey) == upgradeQueryValue,
		LaterHref:   pathWithQuery(c.Path(), withoutQueryKeys(query, upgradeQueryKey)),
		UpgradePath: upgradePath,
	}
}

func currentQuery(c *fiber.Ctx) url.Values {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return url.Values{}
	}
	return values
}

func withoutQueryKeys(query url.Values, keys ...string) url.Values {
	result := url.Values{}
	for key, values := range query {
		result[key] = append([]string(nil), values...)
	}
	for _, key := range keys {
		result.Del(key)
	}
	return result
}

func pathWithQuery(path string, query url.Values) string {
	if strings.TrimSpace(path) == "" {
		path = "/"
	}
	encoded := query.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}
