package console

import (
	"context"
	"sync"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/session"
)

const (
	msgSignupFieldsRequired = "Fill all required fields."
	msgSignupFailed         = "Signup failed. Verify backend is running and try again."
)

// AuthSignupState is the owner registration form snapshot.
type AuthSignupState struct {
	Name          string
	Email         string
	Password      string
	WorkspaceName string
	Timezone      string
	Loading       bool
	ErrorMessage  string
}

// AuthSignup drives owner registration. A successful signup creates the
// account and its workspace in one call and signs the owner in.
type AuthSignup struct {
	client *api.Client
	sess   *session.Store

	mu    sync.Mutex
	state AuthSignupState
}

// NewAuthSignup seeds the form with the given timezone, falling back to
// UTC when it is empty.
func NewAuthSignup(client *api.Client, sess *session.Store, timezone string) *AuthSignup {
	if timezone == "" {
		timezone = "UTC"
	}
	return &AuthSignup{
		client: client,
		sess:   sess,
		state:  AuthSignupState{Timezone: timezone},
	}
}

func (a *AuthSignup) State() AuthSignupState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *AuthSignup) SetName(v string)          { a.setField(func(s *AuthSignupState) { s.Name = v }) }
func (a *AuthSignup) SetEmail(v string)         { a.setField(func(s *AuthSignupState) { s.Email = v }) }
func (a *AuthSignup) SetPassword(v string)      { a.setField(func(s *AuthSignupState) { s.Password = v }) }
func (a *AuthSignup) SetWorkspaceName(v string) { a.setField(func(s *AuthSignupState) { s.WorkspaceName = v }) }
func (a *AuthSignup) SetTimezone(v string)      { a.setField(func(s *AuthSignupState) { s.Timezone = v }) }

func (a *AuthSignup) setField(apply func(*AuthSignupState)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	apply(&a.state)
}

// Submit registers the owner and stores the session. New owners always
// land on onboarding; it returns "/onboarding" on success and "" on
// failure.
func (a *AuthSignup) Submit(ctx context.Context) string {
	a.mu.Lock()
	form := a.state
	if form.Name == "" || form.Email == "" || form.Password == "" || form.WorkspaceName == "" {
		a.state.ErrorMessage = msgSignupFieldsRequired
		a.mu.Unlock()
		return ""
	}
	a.state.Loading = true
	a.state.ErrorMessage = ""
	a.mu.Unlock()

	payload, err := a.client.RegisterOwner(ctx, domain.OwnerSignup{
		Name:          form.Name,
		Email:         form.Email,
		Password:      form.Password,
		WorkspaceName: form.WorkspaceName,
		Timezone:      form.Timezone,
	})
	if err != nil {
		a.mu.Lock()
		a.state.Loading = false
		a.state.ErrorMessage = msgSignupFailed
		a.mu.Unlock()
		return ""
	}

	workspaceID := ""
	if payload.Workspace != nil {
		workspaceID = payload.Workspace.ID
	}
	a.sess.Set(session.State{
		Token:       payload.Token,
		UserName:    payload.User.Name,
		WorkspaceID: workspaceID,
		Role:        domain.RoleOwner,
	})

	a.mu.Lock()
	a.state.Loading = false
	a.mu.Unlock()
	return "/onboarding"
}
