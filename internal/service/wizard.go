package service

import (
	"context"
	"regexp"
	"strings"
)

// The booking wizard is a two-step machine:
//
//	SelectingSlot --Continue (slot chosen)--> EnteringDetails
//	EnteringDetails --Back--> SelectingSlot (entered data preserved)
//	EnteringDetails --Submit (details valid, persist ok)--> Submitted
//
// Guard failures record field-scoped errors and leave the step unchanged.

type WizardStep int

const (
	StepSelectingSlot WizardStep = iota + 1
	StepEnteringDetails
	StepSubmitted
)

// FieldErrors maps field names to human-readable reasons. Validation
// failures are local and recoverable, never fatal.
type FieldErrors map[string]string

// SlotSelection is the typed record for the wizard's first step.
type SlotSelection struct {
	ServiceID string
	StaffID   string
	Date      string
	Time      string
}

// ContactDetails is the typed record for the wizard's second step.
type ContactDetails struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Notes         string
	ReceiveEmails bool
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidateSlotSelection guards the SelectingSlot -> EnteringDetails
// transition.
func ValidateSlotSelection(sel SlotSelection) FieldErrors {
	errs := FieldErrors{}
	if sel.Time == "" {
		errs["slot"] = "Please select a time slot"
	}
	return errs
}

// ValidateContactDetails guards the EnteringDetails -> Submitted
// transition.
func ValidateContactDetails(d ContactDetails) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(d.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(d.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(d.Email) {
		errs["email"] = "Please enter a valid email"
	}
	if strings.TrimSpace(d.Phone) == "" {
		errs["phone"] = "Phone number is required"
	}
	return errs
}

// Wizard holds the in-flight state of one booking flow.
type Wizard struct {
	step    WizardStep
	slot    SlotSelection
	details ContactDetails
	errs    FieldErrors
}

// NewWizard starts a flow at SelectingSlot.
func NewWizard() *Wizard {
	return &Wizard{step: StepSelectingSlot, errs: FieldErrors{}}
}

func (w *Wizard) Step() WizardStep        { return w.step }
func (w *Wizard) Errors() FieldErrors     { return w.errs }
func (w *Wizard) Slot() SlotSelection     { return w.slot }
func (w *Wizard) Details() ContactDetails { return w.details }

// SelectSlot records a slot choice and clears any prior slot error.
func (w *Wizard) SelectSlot(sel SlotSelection) {
	w.slot = sel
	delete(w.errs, "slot")
}

// EnterDetails records the contact details for the second step.
func (w *Wizard) EnterDetails(d ContactDetails) {
	w.details = d
}

// Continue attempts SelectingSlot -> EnteringDetails. It reports whether
// the transition happened; on guard failure the errors carry the reason.
func (w *Wizard) Continue() bool {
	if w.step != StepSelectingSlot {
		return false
	}
	if errs := ValidateSlotSelection(w.slot); len(errs) > 0 {
		w.errs = errs
		return false
	}
	w.errs = FieldErrors{}
	w.step = StepEnteringDetails
	return true
}

// Back returns to slot selection. Entered details are preserved.
func (w *Wizard) Back() {
	if w.step == StepEnteringDetails {
		w.step = StepSelectingSlot
	}
}

// Submit attempts EnteringDetails -> Submitted. Detail validation failures
// and persist failures both leave the wizard on the details step with its
// data intact; a persist failure surfaces as a form-level "submit" error.
func (w *Wizard) Submit(ctx context.Context, persist func(context.Context) error) bool {
	if w.step != StepEnteringDetails {
		return false
	}
	if errs := ValidateContactDetails(w.details); len(errs) > 0 {
		w.errs = errs
		return false
	}
	w.errs = FieldErrors{}
	if err := persist(ctx); err != nil {
		w.errs = FieldErrors{"submit": "Failed to submit booking. Please try again."}
		return false
	}
	w.step = StepSubmitted
	return true
}
