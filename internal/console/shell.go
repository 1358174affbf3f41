package console

import (
	"context"
	"strings"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/session"
)

// NavItem is one sidebar navigation entry. Icon names the glyph the view
// layer renders.
type NavItem struct {
	Href  string
	Label string
	Icon  string
}

var ownerNavConfig = []NavItem{
	{Href: "/dashboard", Label: "Dashboard", Icon: "layout-dashboard"},
	{Href: "/staff", Label: "Staff Management", Icon: "users"},
	{Href: "/setup", Label: "Public Flow Setup", Icon: "workflow"},
	{Href: "/settings", Label: "Integrations", Icon: "link-2"},
	{Href: "/inventory", Label: "Inventory", Icon: "boxes"},
}

var staffNavConfig = []NavItem{
	{Href: "/dashboard", Label: "Dashboard", Icon: "layout-dashboard"},
	{Href: "/inbox", Label: "Inbox", Icon: "mail"},
	{Href: "/bookings", Label: "Bookings", Icon: "calendar-check"},
	{Href: "/setup", Label: "Public Flow Setup", Icon: "workflow"},
	{Href: "/forms", Label: "Forms", Icon: "gauge"},
	{Href: "/inventory", Label: "Inventory", Icon: "boxes"},
}

// Shell holds the chrome around every authenticated page: navigation,
// titles, and the navigation guards that keep roles on their own routes.
type Shell struct {
	client *api.Client
	sess   *session.Store
}

func NewShell(client *api.Client, sess *session.Store) *Shell {
	return &Shell{client: client, sess: sess}
}

// Title returns the console heading for the given role surface.
func (s *Shell) Title(role domain.Role) string {
	if role == domain.RoleOwner {
		return "CareOps Owner Console"
	}
	return "CareOps Staff Workspace"
}

// WorkspaceLabel is the chrome's workspace indicator.
func (s *Shell) WorkspaceLabel() string {
	if id := s.sess.Snapshot().WorkspaceID; id != "" {
		return id
	}
	return "workspace-not-set"
}

// NavItems returns the role's navigation entries with hrefs rooted at
// basePath.
func (s *Shell) NavItems(role domain.Role, basePath string) []NavItem {
	config := staffNavConfig
	if role == domain.RoleOwner {
		config = ownerNavConfig
	}
	base := normalizeBasePath(basePath)
	items := make([]NavItem, len(config))
	for i, item := range config {
		items[i] = item
		items[i].Href = base + item.Href
	}
	return items
}

func normalizeBasePath(basePath string) string {
	if basePath == "" || basePath == "/" {
		return ""
	}
	return strings.TrimSuffix(basePath, "/")
}

// GuardRedirect returns the path an unauthenticated or wrong-role visitor
// must be sent to, or "" when the session may stay on this surface.
func (s *Shell) GuardRedirect(role domain.Role) string {
	snap := s.sess.Snapshot()
	if !snap.Authenticated() {
		return "/login"
	}
	sessionRole := snap.Role
	if sessionRole == "" {
		sessionRole = domain.RoleOwner
	}
	if sessionRole != role {
		return "/" + string(sessionRole) + "/dashboard"
	}
	return ""
}

// OnboardingGate checks whether an owner landing on a dashboard route must
// finish onboarding first. It returns "/onboarding" while the session's
// workspace is not active, "/login" when identity cannot be confirmed, and
// "" when the dashboard may render.
func (s *Shell) OnboardingGate(ctx context.Context, role domain.Role, path, basePath string) string {
	snap := s.sess.Snapshot()
	if !snap.Authenticated() || role != domain.RoleOwner {
		return ""
	}
	dashboardPath := normalizeBasePath(basePath) + "/dashboard"
	if path != dashboardPath && !strings.HasPrefix(path, dashboardPath+"/") {
		return ""
	}

	me, err := s.client.Me(ctx)
	if err != nil {
		return "/login"
	}
	workspace := resolveWorkspace(me.Workspaces, snap.WorkspaceID)
	if workspace == nil || workspace.OnboardingStatus != domain.OnboardingActive {
		return "/onboarding"
	}
	return ""
}

// ResolveLegacySettings maps the retired /settings route to its current
// home: staff dashboards for staff, owner settings once onboarding is
// done, the onboarding flow otherwise. rawQuery is carried through intact.
func (s *Shell) ResolveLegacySettings(ctx context.Context, rawQuery string) string {
	suffix := ""
	if rawQuery != "" {
		suffix = "?" + rawQuery
	}
	snap := s.sess.Snapshot()
	if !snap.Authenticated() {
		return "/login" + suffix
	}
	if snap.Role == domain.RoleStaff {
		return "/staff/dashboard" + suffix
	}

	me, err := s.client.Me(ctx)
	if err != nil {
		return "/login" + suffix
	}
	workspace := resolveWorkspace(me.Workspaces, snap.WorkspaceID)
	if workspace != nil && workspace.OnboardingStatus == domain.OnboardingActive {
		return "/owner/settings" + suffix
	}
	return "/onboarding" + suffix
}

// SignOut wipes the session.
func (s *Shell) SignOut() {
	s.sess.Clear()
}

// resolveWorkspace prefers the session's workspace and falls back to the
// first membership.
func resolveWorkspace(workspaces []domain.Workspace, workspaceID string) *domain.Workspace {
	if workspaceID != "" {
		for i := range workspaces {
			if workspaces[i].ID == workspaceID {
				return &workspaces[i]
			}
		}
	}
	if len(workspaces) > 0 {
		return &workspaces[0]
	}
	return nil
}
