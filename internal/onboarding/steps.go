package onboarding

import "github.com/erinpaul2002/careops-console/internal/domain"

// StepKey identifies one checklist step. The backend readiness endpoint
// reports completion under these same keys.
type StepKey string

const (
	StepWorkspace        StepKey = "workspace"
	StepChannels         StepKey = "channels"
	StepContactForm      StepKey = "contact_form"
	StepBookings         StepKey = "bookings"
	StepForms            StepKey = "forms"
	StepInventory        StepKey = "inventory"
	StepStaff            StepKey = "staff"
	StepActivationReview StepKey = "activation_review"
)

// Step is one checklist entry with its completion state.
type Step struct {
	Key       StepKey `json:"key"`
	Label     string  `json:"label"`
	Detail    string  `json:"detail"`
	Completed bool    `json:"completed"`
}

func stepDefinitions() []Step {
	return []Step{
		{
			Key:    StepWorkspace,
			Label:  "Step 1: Create Workspace",
			Detail: "Business name, timezone, address, and contact email are captured during signup.",
		},
		{
			Key:    StepChannels,
			Label:  "Step 2: Set Up Integrations",
			Detail: "Connect both Gmail and Google Calendar so confirmations, reminders, and booking sync can run.",
		},
		{
			Key:    StepContactForm,
			Label:  "Step 3: Create Contact Form",
			Detail: "Configure public contact fields so leads can submit inquiries successfully.",
		},
		{
			Key:    StepBookings,
			Label:  "Step 4: Set Up Bookings",
			Detail: "Create active services and availability so the public booking page can accept appointments.",
		},
		{
			Key:    StepForms,
			Label:  "Step 5: Set Up Forms",
			Detail: "Prepare post-booking form templates so follow-up intake can run automatically.",
		},
		{
			Key:    StepInventory,
			Label:  "Step 6: Set Up Inventory",
			Detail: "Add baseline inventory items and thresholds for low-stock monitoring.",
		},
		{
			Key:    StepStaff,
			Label:  "Step 7: Add Staff & Permissions",
			Detail: "Invite staff users and assign permissions so owners are not the only operators.",
		},
		{
			Key:    StepActivationReview,
			Label:  "Step 8: Activate Workspace",
			Detail: "Run final readiness checks and activate the workspace to go live.",
		},
	}
}

func stepKeys(definitions []Step) []StepKey {
	keys := make([]StepKey, len(definitions))
	for i, step := range definitions {
		keys[i] = step.Key
	}
	return keys
}

func emptyCompletion(keys []StepKey) map[StepKey]bool {
	completion := make(map[StepKey]bool, len(keys))
	for _, key := range keys {
		completion[key] = false
	}
	return completion
}

func buildSteps(definitions []Step, completion map[StepKey]bool) []Step {
	steps := make([]Step, len(definitions))
	for i, step := range definitions {
		step.Completed = completion[step.Key]
		steps[i] = step
	}
	return steps
}

func completionFromReadiness(readiness *domain.WorkspaceReadiness, keys []StepKey) map[StepKey]bool {
	completion := emptyCompletion(keys)
	if readiness == nil {
		return completion
	}
	for _, key := range keys {
		completion[key] = readiness.Completion[string(key)]
	}
	return completion
}

// hasDrift reports whether the workspace's stored checklist disagrees
// with readiness-derived completion on any step.
func hasDrift(current map[string]bool, next map[StepKey]bool, keys []StepKey) bool {
	for _, key := range keys {
		if current[string(key)] != next[key] {
			return true
		}
	}
	return false
}

func findFirstIncompleteIndex(steps []Step) int {
	for i, step := range steps {
		if !step.Completed {
			return i
		}
	}
	if len(steps) == 0 {
		return 0
	}
	return len(steps) - 1
}

// resolveActiveStepIndex keeps the operator on the step they were
// viewing unless it is already done, in which case the first incomplete
// step takes over.
func resolveActiveStepIndex(currentIndex int, steps []Step) int {
	if len(steps) == 0 {
		return 0
	}
	bounded := clampIndex(currentIndex, len(steps))
	if !steps[bounded].Completed {
		return bounded
	}
	return findFirstIncompleteIndex(steps)
}

func clampIndex(index, length int) int {
	if index < 0 {
		return 0
	}
	if index > length-1 {
		return length - 1
	}
	return index
}
