package onboarding

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/session"
)

const (
	msgNoWorkspace      = "Workspace is not available in current session."
	msgSyncFailed       = "Checklist updated locally but backend sync failed. Activation may fail until sync succeeds."
	msgLoadFailed       = "Could not load onboarding checklist from workspace data."
	msgChannelsBlocked  = "Complete both Gmail and Google Calendar integrations before moving to the next step."
	msgIncompleteSteps  = "Complete all onboarding steps before activation."
	msgActivationFailed = "Activation failed. Verify required backend setup and owner permissions."
	msgActivatedLocally = "Workspace marked as active locally."
	msgActivated        = "Workspace activated successfully."
)

// State is the checklist view model. ErrorMessage and ActivationMessage
// are operator-facing banner texts, empty when nothing should show.
type State struct {
	Loading           bool
	Steps             []Step
	ActiveStepIndex   int
	Blockers          []string
	Warnings          []string
	CanActivate       bool
	Activating        bool
	WorkspaceStatus   domain.OnboardingStatus
	ErrorMessage      string
	ActivationMessage string
}

// CompletionPercent is the rounded share of completed steps.
func (s State) CompletionPercent() int {
	if len(s.Steps) == 0 {
		return 0
	}
	completed := 0
	for _, step := range s.Steps {
		if step.Completed {
			completed++
		}
	}
	return (completed*100 + len(s.Steps)/2) / len(s.Steps)
}

// Engine drives the eight-step activation checklist. Completion truth
// lives in the backend readiness report; the engine reconciles the
// workspace's stored checklist toward it and layers the one local-only
// step (contact form review) on top.
type Engine struct {
	client *api.Client
	sess   *session.Store
	prefs  *session.Prefs

	mu          sync.Mutex
	state       State
	definitions []Step
	keys        []StepKey
}

func NewEngine(client *api.Client, sess *session.Store, prefs *session.Prefs) *Engine {
	definitions := stepDefinitions()
	return &Engine{
		client:      client,
		sess:        sess,
		prefs:       prefs,
		definitions: definitions,
		keys:        stepKeys(definitions),
		state: State{
			Loading:         true,
			Steps:           buildSteps(definitions, emptyCompletion(stepKeys(definitions))),
			WorkspaceStatus: domain.OnboardingDraft,
		},
	}
}

// Snapshot returns a copy of the current checklist state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyStateLocked()
}

func (e *Engine) copyStateLocked() State {
	out := e.state
	out.Steps = append([]Step(nil), e.state.Steps...)
	out.Blockers = append([]string(nil), e.state.Blockers...)
	out.Warnings = append([]string(nil), e.state.Warnings...)
	return out
}

type evaluation struct {
	steps           []Step
	syncFailed      bool
	workspaceStatus domain.OnboardingStatus
	blockers        []string
	warnings        []string
	canActivate     bool
}

// evaluate fetches identity and readiness together, pushes the
// checklist back to the workspace when it drifted, and applies the
// local contact-form acknowledgement for draft workspaces.
func (e *Engine) evaluate(ctx context.Context) (evaluation, error) {
	workspaceID := e.sess.Snapshot().WorkspaceID
	if workspaceID == "" {
		return evaluation{
			steps:           buildSteps(e.definitions, emptyCompletion(e.keys)),
			workspaceStatus: domain.OnboardingDraft,
			blockers:        []string{msgNoWorkspace},
		}, nil
	}

	var (
		wg           sync.WaitGroup
		me           *domain.Me
		readiness    *domain.WorkspaceReadiness
		meErr, rdErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		me, meErr = e.client.Me(ctx)
	}()
	go func() {
		defer wg.Done()
		readiness, rdErr = e.client.WorkspaceReadiness(ctx)
	}()
	wg.Wait()
	if meErr != nil {
		return evaluation{}, meErr
	}
	if rdErr != nil {
		return evaluation{}, rdErr
	}

	var workspace *domain.Workspace
	for i := range me.Workspaces {
		if me.Workspaces[i].ID == workspaceID {
			workspace = &me.Workspaces[i]
			break
		}
	}

	completion := completionFromReadiness(readiness, e.keys)

	syncFailed := false
	var stored map[string]bool
	if workspace != nil {
		stored = workspace.OnboardingSteps
	}
	if hasDrift(stored, completion, e.keys) {
		steps := make(map[string]bool, len(completion))
		for key, done := range completion {
			steps[string(key)] = done
		}
		if _, err := e.client.PatchOnboardingSteps(ctx, workspaceID, steps); err != nil {
			log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("onboarding checklist sync failed")
			syncFailed = true
		}
	}

	status := domain.OnboardingDraft
	switch {
	case workspace != nil && workspace.OnboardingStatus != "":
		status = workspace.OnboardingStatus
	case readiness.OnboardingStatus != "":
		status = readiness.OnboardingStatus
	}
	if status == domain.OnboardingDraft && !e.prefs.ContactFormAcknowledged(workspaceID) {
		completion[StepContactForm] = false
	}

	return evaluation{
		steps:           buildSteps(e.definitions, completion),
		syncFailed:      syncFailed,
		workspaceStatus: status,
		blockers:        readiness.Blockers,
		warnings:        readiness.Warnings,
		canActivate:     readiness.CanActivate,
	}, nil
}

// Refresh re-evaluates the checklist and returns the refreshed steps,
// or nil when evaluation failed.
func (e *Engine) Refresh(ctx context.Context) []Step {
	return e.refresh(ctx, true, false)
}

func (e *Engine) refresh(ctx context.Context, withLoading, clearMessage bool) []Step {
	if withLoading {
		e.mu.Lock()
		e.state.Loading = true
		e.state.ErrorMessage = ""
		if clearMessage {
			e.state.ActivationMessage = ""
		}
		e.mu.Unlock()
	}

	result, err := e.evaluate(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Loading = false
	if clearMessage {
		e.state.ActivationMessage = ""
	}
	if err != nil {
		e.state.ErrorMessage = msgLoadFailed
		return nil
	}
	e.state.Steps = result.steps
	e.state.ActiveStepIndex = resolveActiveStepIndex(e.state.ActiveStepIndex, result.steps)
	e.state.WorkspaceStatus = result.workspaceStatus
	e.state.Blockers = result.blockers
	e.state.Warnings = result.warnings
	e.state.CanActivate = result.canActivate
	if result.syncFailed {
		e.state.ErrorMessage = msgSyncFailed
	} else {
		e.state.ErrorMessage = ""
	}
	return append([]Step(nil), result.steps...)
}

// Activate verifies every step is complete, then asks the backend to
// flip the workspace live. An incomplete checklist jumps the view to
// the first unfinished step instead.
func (e *Engine) Activate(ctx context.Context) {
	workspaceID := e.sess.Snapshot().WorkspaceID

	e.mu.Lock()
	e.state.Activating = true
	e.state.ErrorMessage = ""
	e.state.ActivationMessage = ""
	fallback := append([]Step(nil), e.state.Steps...)
	e.mu.Unlock()

	steps := e.refresh(ctx, false, true)
	if steps == nil {
		steps = fallback
	}

	allCompleted := true
	for _, step := range steps {
		if !step.Completed {
			allCompleted = false
			break
		}
	}

	if !allCompleted {
		e.mu.Lock()
		e.state.Activating = false
		e.state.ErrorMessage = msgIncompleteSteps
		e.state.ActiveStepIndex = findFirstIncompleteIndex(steps)
		e.mu.Unlock()
		return
	}
	if workspaceID == "" {
		e.mu.Lock()
		e.state.Activating = false
		e.state.ActivationMessage = msgActivatedLocally
		e.mu.Unlock()
		return
	}

	_, err := e.client.ActivateWorkspace(ctx, workspaceID)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Activating = false
	if err != nil {
		e.state.ErrorMessage = msgActivationFailed
		return
	}
	e.state.WorkspaceStatus = domain.OnboardingActive
	e.state.CanActivate = true
	if len(e.state.Steps) > 0 {
		e.state.ActiveStepIndex = len(e.state.Steps) - 1
	}
	e.state.ActivationMessage = msgActivated
}

// SelectStep moves the view to any step, clamped to the checklist.
func (e *Engine) SelectStep(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.state.Steps) == 0 {
		return
	}
	e.state.ActiveStepIndex = clampIndex(index, len(e.state.Steps))
}

// NextStep advances past the current step. The integrations step blocks
// until both channels are connected; leaving the contact-form step
// records the local acknowledgement that completes it.
func (e *Engine) NextStep(ctx context.Context) {
	e.mu.Lock()
	selected := e.state.ActiveStepIndex
	fallback := append([]Step(nil), e.state.Steps...)
	e.mu.Unlock()

	steps := e.refresh(ctx, false, false)
	if steps == nil {
		steps = fallback
	}
	if len(steps) == 0 {
		return
	}

	current := clampIndex(selected, len(steps))
	currentStep := steps[current]

	if currentStep.Key == StepChannels && !currentStep.Completed {
		e.mu.Lock()
		e.state.ErrorMessage = msgChannelsBlocked
		e.mu.Unlock()
		return
	}

	if currentStep.Key == StepContactForm {
		if workspaceID := e.sess.Snapshot().WorkspaceID; workspaceID != "" {
			e.prefs.AcknowledgeContactForm(workspaceID)
		}
		for i := range steps {
			if steps[i].Key == StepContactForm {
				steps[i].Completed = true
			}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Steps = steps
	e.state.ErrorMessage = ""
	e.state.ActiveStepIndex = clampIndex(current+1, len(steps))
}

// PreviousStep moves the view back one step.
func (e *Engine) PreviousStep() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.ActiveStepIndex > 0 {
		e.state.ActiveStepIndex--
	}
}
