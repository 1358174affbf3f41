package console

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/session"
)

// StaffDraft is the new-staff form.
type StaffDraft struct {
	Name     string
	Email    string
	Password string
}

// StaffState is the staff management view model.
type StaffState struct {
	Loading          bool
	ErrorMessage     string
	Success          string
	WorkspaceID      string
	Members          []domain.WorkspaceMember
	Draft            StaffDraft
	Creating         bool
	MutatingMemberID string
}

// Staff manages workspace member accounts. Every operation is blocked
// without a workspace in the session.
type Staff struct {
	client *api.Client
	sess   *session.Store

	mu    sync.Mutex
	state StaffState
}

func NewStaff(client *api.Client, sess *session.Store) *Staff {
	return &Staff{client: client, sess: sess, state: StaffState{Loading: true}}
}

func (s *Staff) State() StaffState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	out.Members = append([]domain.WorkspaceMember(nil), s.state.Members...)
	return out
}

// Refresh loads the member list for the session workspace.
func (s *Staff) Refresh(ctx context.Context) {
	workspaceID := s.sess.Snapshot().WorkspaceID
	if workspaceID == "" {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.state.WorkspaceID = ""
		s.state.Loading = false
		s.state.ErrorMessage = "No workspace found in session."
		return
	}

	s.mu.Lock()
	s.state.WorkspaceID = workspaceID
	s.state.Loading = true
	s.state.ErrorMessage = ""
	s.state.Success = ""
	s.mu.Unlock()

	members, err := s.client.WorkspaceMembers(ctx, workspaceID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		s.state.ErrorMessage = "Could not load workspace members."
		return
	}
	s.state.Members = members
}

// SetDraft replaces the new-staff form and clears banners.
func (s *Staff) SetDraft(draft StaffDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Draft = draft
	s.state.ErrorMessage = ""
	s.state.Success = ""
}

// CreateStaff validates the draft and invites a staff account. The
// email is lowercased before submission.
func (s *Staff) CreateStaff(ctx context.Context) {
	s.mu.Lock()
	workspaceID := s.state.WorkspaceID
	draft := s.state.Draft
	s.mu.Unlock()

	if workspaceID == "" {
		s.setError("Workspace context missing.")
		return
	}

	name := strings.TrimSpace(draft.Name)
	email := strings.ToLower(strings.TrimSpace(draft.Email))
	if name == "" || email == "" || draft.Password == "" {
		s.setError("Name, email, and password are required.")
		return
	}

	s.mu.Lock()
	s.state.Creating = true
	s.state.ErrorMessage = ""
	s.state.Success = ""
	s.mu.Unlock()

	_, err := s.client.CreateWorkspaceMember(ctx, workspaceID, domain.MemberCreate{
		Name:     name,
		Email:    email,
		Password: draft.Password,
		Role:     domain.RoleStaff,
	})
	var members []domain.WorkspaceMember
	if err == nil {
		members, err = s.client.WorkspaceMembers(ctx, workspaceID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Creating = false
	if err != nil {
		s.state.ErrorMessage = "Failed to create staff account. Check email uniqueness and password format."
		return
	}
	s.state.Members = members
	s.state.Draft = StaffDraft{}
	s.state.Success = "Staff account created."
}

// ToggleRole flips a member between staff and owner.
func (s *Staff) ToggleRole(ctx context.Context, member domain.WorkspaceMember) {
	s.mu.Lock()
	workspaceID := s.state.WorkspaceID
	s.mu.Unlock()
	if workspaceID == "" {
		return
	}

	nextRole := domain.RoleStaff
	if member.Role == domain.RoleStaff {
		nextRole = domain.RoleOwner
	}

	s.mu.Lock()
	s.state.MutatingMemberID = member.ID
	s.state.ErrorMessage = ""
	s.state.Success = ""
	s.mu.Unlock()

	_, err := s.client.UpdateWorkspaceMemberRole(ctx, workspaceID, member.UserID, nextRole)
	var members []domain.WorkspaceMember
	if err == nil {
		members, err = s.client.WorkspaceMembers(ctx, workspaceID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.MutatingMemberID = ""
	if err != nil {
		s.state.ErrorMessage = "Could not update member role."
		return
	}
	s.state.Members = members
	s.state.Success = fmt.Sprintf("Updated role to %s.", nextRole)
}

// RemoveMember deletes a member account and refetches the list.
func (s *Staff) RemoveMember(ctx context.Context, member domain.WorkspaceMember) {
	s.mu.Lock()
	workspaceID := s.state.WorkspaceID
	s.mu.Unlock()
	if workspaceID == "" {
		return
	}

	s.mu.Lock()
	s.state.MutatingMemberID = member.ID
	s.state.ErrorMessage = ""
	s.state.Success = ""
	s.mu.Unlock()

	err := s.client.RemoveWorkspaceMember(ctx, workspaceID, member.UserID)
	var members []domain.WorkspaceMember
	if err == nil {
		members, err = s.client.WorkspaceMembers(ctx, workspaceID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.MutatingMemberID = ""
	if err != nil {
		s.state.ErrorMessage = "Could not remove member."
		return
	}
	s.state.Members = members
	s.state.Success = "Member removed."
}

func (s *Staff) setError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ErrorMessage = message
	s.state.Success = ""
}
