package domain

// Role of the signed-in user inside a workspace.
type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
)

// OnboardingStatus of a workspace. Draft workspaces are still in setup;
// active is terminal on the client side.
type OnboardingStatus string

const (
	OnboardingDraft  OnboardingStatus = "draft"
	OnboardingActive OnboardingStatus = "active"
)

// User is the backend account projection.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status,omitempty"`
}

// Workspace is a tenant: one service business with its own services,
// bookings, staff, and configuration.
type Workspace struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Slug             string            `json:"slug"`
	Timezone         string            `json:"timezone"`
	Address          string            `json:"address,omitempty"`
	ContactEmail     string            `json:"contactEmail,omitempty"`
	OnboardingStatus OnboardingStatus  `json:"onboardingStatus,omitempty"`
	OnboardingSteps  map[string]bool   `json:"onboardingSteps,omitempty"`
	PublicFlowConfig *PublicFlowConfig `json:"publicFlowConfig,omitempty"`
	AIConfig         *AIConfig         `json:"aiConfig,omitempty"`
	Role             Role              `json:"role,omitempty"`
}

// WorkspaceReadiness is the backend-computed onboarding signal. The client
// treats it as the single source of truth for step completion.
type WorkspaceReadiness struct {
	OnboardingStatus OnboardingStatus `json:"onboardingStatus"`
	Completion       map[string]bool  `json:"completion"`
	MissingSteps     []string         `json:"missingSteps"`
	Warnings         []string         `json:"warnings"`
	Blockers         []string         `json:"blockers"`
	CanActivate      bool             `json:"canActivate"`
}

// WorkspaceMember links a user to a workspace with a role.
type WorkspaceMember struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId"`
	UserID      string `json:"userId"`
	Role        Role   `json:"role"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
	User        *User  `json:"user"`
}

// MemberCreate is the invite payload for a new staff account.
type MemberCreate struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role,omitempty"`
}

// AuthResponse is returned by login, staff-login, and owner registration.
type AuthResponse struct {
	Token      string      `json:"token"`
	ExpiresAt  string      `json:"expiresAt"`
	User       User        `json:"user"`
	Workspace  *Workspace  `json:"workspace,omitempty"`
	Workspaces []Workspace `json:"workspaces,omitempty"`
}

// Me is the authenticated identity plus workspace memberships.
type Me struct {
	User       User        `json:"user"`
	Workspaces []Workspace `json:"workspaces"`
}

// OwnerSignup is the owner registration payload.
type OwnerSignup struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	WorkspaceName string `json:"workspaceName" validate:"required"`
	Timezone      string `json:"timezone,omitempty"`
	Address       string `json:"address,omitempty"`
	ContactEmail  string `json:"contactEmail,omitempty" validate:"omitempty,email"`
}

// AIConfig controls workspace-level AI assistance toggles.
type AIConfig struct {
	ContactAutoReplyEnabled bool `json:"contactAutoReplyEnabled"`
	InboxReplyAssistEnabled bool `json:"inboxReplyAssistEnabled"`
}

// AIConfigStatus pairs the config with whether a provider key is set.
type AIConfigStatus struct {
	AIConfig       AIConfig `json:"aiConfig"`
	GroqConfigured bool     `json:"groqConfigured"`
}

// AIConfigPatch updates a subset of the AI toggles.
type AIConfigPatch struct {
	ContactAutoReplyEnabled *bool `json:"contactAutoReplyEnabled,omitempty"`
	InboxReplyAssistEnabled *bool `json:"inboxReplyAssistEnabled,omitempty"`
}
