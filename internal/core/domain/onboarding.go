package domain

import (
	"fmt"
	"time"
)

// Step is a screen of the onboarding wizard.
type Step string

const (
	StepBirthday       Step = "birthday"
	StepRoleSelection  Step = "role_selection"
	StepRoleDetails    Step = "role_details"
	StepLocation       Step = "location"
	StepProfilePicture Step = "profile_picture"
)

var stepOrder = []Step{
	StepBirthday,
	StepRoleSelection,
	StepRoleDetails,
	StepLocation,
	StepProfilePicture,
}

// Steps returns the wizard steps in order.
func Steps() []Step {
	out := make([]Step, len(stepOrder))
	copy(out, stepOrder)
	return out
}

// ParseStep converts s into a Step.
func ParseStep(s string) (Step, error) {
	step := Step(s)
	if step.Index() < 0 {
		return "", fmt.Errorf("unknown onboarding step %q", s)
	}
	return step, nil
}

// Index returns the position of s in the wizard, or -1 for an unknown step.
func (s Step) Index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Next returns the successor of s. The last step is its own successor.
func (s Step) Next() Step {
	i := s.Index()
	if i < 0 || i == len(stepOrder)-1 {
		return s
	}
	return stepOrder[i+1]
}

// Terminal reports whether s is the last step of the wizard.
func (s Step) Terminal() bool {
	return s.Index() == len(stepOrder)-1
}

// Coordinator holds the current wizard step and the profile accumulated so far.
type Coordinator struct {
	Step      Step        `json:"step"`
	Profile   ProfileData `json:"profile"`
	StartedAt time.Time   `json:"started_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewCoordinator returns a coordinator positioned at the first step.
func NewCoordinator(now time.Time) *Coordinator {
	return &Coordinator{
		Step:      StepBirthday,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Advance moves to the next step. At the last step it does nothing.
func (c *Coordinator) Advance() {
	c.Step = c.Step.Next()
}

// Submit applies the update produced by a screen. Screens before the current
// step may be resubmitted without moving the wizard; submitting the current
// screen advances it; screens after the current step are rejected.
func (c *Coordinator) Submit(step Step, now time.Time, update func(ProfileData) ProfileData) error {
	if err := c.CanSubmit(step); err != nil {
		return err
	}

	c.Profile = update(c.Profile)
	c.UpdatedAt = now
	if step == c.Step {
		c.Advance()
	}
	return nil
}

// CanSubmit reports whether the screen for step may be submitted now.
func (c *Coordinator) CanSubmit(step Step) error {
	at, cur := step.Index(), c.Step.Index()
	if at < 0 || at > cur {
		return fmt.Errorf("%w: %s submitted while at %s", ErrStepOutOfOrder, step, c.Step)
	}
	return nil
}
