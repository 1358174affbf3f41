package console

import (
	"context"
	"strings"
	"sync"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/session"
)

// LoginMode selects which authentication endpoint Submit calls.
type LoginMode string

const (
	LoginOwner LoginMode = "owner"
	LoginStaff LoginMode = "staff"
)

const (
	msgOwnerEmailRequired = "Email is required for owner login."
	msgStaffEmailRequired = "Email is required for staff login."
	msgPasswordRequired   = "Password is required."
	msgStaffLoginFailed   = "Staff login failed. Verify email and password."
	msgOwnerLoginFailed   = "Login failed. Verify credentials and backend availability."
)

// AuthLoginState is the login form snapshot.
type AuthLoginState struct {
	Mode         LoginMode
	Email        string
	Password     string
	Loading      bool
	ErrorMessage string
}

// AuthLogin drives the sign-in form for both owner and staff accounts.
type AuthLogin struct {
	client *api.Client
	sess   *session.Store

	mu    sync.Mutex
	state AuthLoginState
}

func NewAuthLogin(client *api.Client, sess *session.Store) *AuthLogin {
	return &AuthLogin{
		client: client,
		sess:   sess,
		state:  AuthLoginState{Mode: LoginOwner},
	}
}

// State returns a snapshot of the form.
func (a *AuthLogin) State() AuthLoginState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// SetMode switches between owner and staff login and clears any error.
func (a *AuthLogin) SetMode(mode LoginMode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Mode = mode
	a.state.ErrorMessage = ""
}

func (a *AuthLogin) SetEmail(email string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Email = email
}

func (a *AuthLogin) SetPassword(password string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Password = password
}

// Submit authenticates with the current form values. On success it stores
// the session in two phases: first token and user name, then the resolved
// workspace and role once /auth/me answers. It returns the path the caller
// should redirect to, or "" when the login failed.
func (a *AuthLogin) Submit(ctx context.Context) string {
	a.mu.Lock()
	mode := a.state.Mode
	email := a.state.Email
	password := a.state.Password

	if email == "" {
		if mode == LoginStaff {
			a.state.ErrorMessage = msgStaffEmailRequired
		} else {
			a.state.ErrorMessage = msgOwnerEmailRequired
		}
		a.mu.Unlock()
		return ""
	}
	if password == "" {
		a.state.ErrorMessage = msgPasswordRequired
		a.mu.Unlock()
		return ""
	}
	a.state.Loading = true
	a.state.ErrorMessage = ""
	a.mu.Unlock()

	var (
		payload *domain.AuthResponse
		err     error
	)
	if mode == LoginStaff {
		payload, err = a.client.StaffLogin(ctx, api.Credentials{
			Email:    strings.TrimSpace(email),
			Password: password,
		})
	} else {
		payload, err = a.client.Login(ctx, api.Credentials{
			Email:    email,
			Password: password,
		})
	}
	if err != nil {
		a.fail(mode)
		return ""
	}

	a.sess.Set(session.State{
		Token:    payload.Token,
		UserName: payload.User.Name,
	})

	me, err := a.client.Me(ctx)
	if err != nil {
		a.fail(mode)
		return ""
	}

	var workspace *domain.Workspace
	if len(me.Workspaces) > 0 {
		workspace = &me.Workspaces[0]
	}

	role := domain.RoleOwner
	if mode == LoginStaff {
		role = domain.RoleStaff
	}
	workspaceID := ""
	if workspace != nil {
		workspaceID = workspace.ID
		if workspace.Role != "" {
			role = workspace.Role
		}
	}

	a.sess.Set(session.State{
		Token:       payload.Token,
		UserName:    payload.User.Name,
		WorkspaceID: workspaceID,
		Role:        role,
	})

	a.mu.Lock()
	a.state.Loading = false
	a.mu.Unlock()

	if role == domain.RoleOwner && workspace != nil && workspace.OnboardingStatus != domain.OnboardingActive {
		return "/onboarding"
	}
	if role == domain.RoleOwner {
		return "/owner/dashboard"
	}
	return "/" + string(role) + "/dashboard"
}

func (a *AuthLogin) fail(mode LoginMode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Loading = false
	if mode == LoginStaff {
		a.state.ErrorMessage = msgStaffLoginFailed
	} else {
		a.state.ErrorMessage = msgOwnerLoginFailed
	}
}
