package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() ContactDetails {
	return ContactDetails{
		FirstName: "Sam",
		LastName:  "Carter",
		Email:     "sam@example.com",
		Phone:     "555-0100",
	}
}

func TestWizard_StartsAtSlotSelection(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, StepSelectingSlot, w.Step())
	assert.Empty(t, w.Errors())
}

func TestWizard_ContinueWithoutSlotStays(t *testing.T) {
	w := NewWizard()

	assert.False(t, w.Continue())
	assert.Equal(t, StepSelectingSlot, w.Step())
	assert.Equal(t, "Please select a time slot", w.Errors()["slot"])
}

func TestWizard_SelectSlotClearsErrorAndContinues(t *testing.T) {
	w := NewWizard()
	require.False(t, w.Continue())

	w.SelectSlot(SlotSelection{ServiceID: "haircut", Date: "2026-09-03", Time: "10:00"})
	assert.Empty(t, w.Errors()["slot"])

	assert.True(t, w.Continue())
	assert.Equal(t, StepEnteringDetails, w.Step())
}

func TestWizard_BackPreservesDetails(t *testing.T) {
	w := NewWizard()
	w.SelectSlot(SlotSelection{Time: "10:00"})
	require.True(t, w.Continue())

	w.EnterDetails(validDetails())
	w.Back()
	assert.Equal(t, StepSelectingSlot, w.Step())
	assert.Equal(t, "Sam", w.Details().FirstName)

	// Going forward again still has the data.
	require.True(t, w.Continue())
	assert.Equal(t, "sam@example.com", w.Details().Email)
}

func TestWizard_SubmitValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*ContactDetails)
		field   string
		message string
	}{
		{"missing first name", func(d *ContactDetails) { d.FirstName = "  " }, "firstName", "First name is required"},
		{"missing last name", func(d *ContactDetails) { d.LastName = "" }, "lastName", "Last name is required"},
		{"missing email", func(d *ContactDetails) { d.Email = "" }, "email", "Email is required"},
		{"malformed email", func(d *ContactDetails) { d.Email = "not-an-email" }, "email", "Please enter a valid email"},
		{"missing phone", func(d *ContactDetails) { d.Phone = "" }, "phone", "Phone number is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWizard()
			w.SelectSlot(SlotSelection{Time: "10:00"})
			require.True(t, w.Continue())

			d := validDetails()
			tc.mutate(&d)
			w.EnterDetails(d)

			persisted := false
			ok := w.Submit(context.Background(), func(context.Context) error {
				persisted = true
				return nil
			})

			assert.False(t, ok)
			assert.False(t, persisted, "guard failure must not reach persistence")
			assert.Equal(t, StepEnteringDetails, w.Step())
			assert.Equal(t, tc.message, w.Errors()[tc.field])
		})
	}
}

func TestWizard_SubmitPersistFailureKeepsData(t *testing.T) {
	w := NewWizard()
	w.SelectSlot(SlotSelection{Time: "10:00"})
	require.True(t, w.Continue())
	w.EnterDetails(validDetails())

	ok := w.Submit(context.Background(), func(context.Context) error {
		return errors.New("store unavailable")
	})

	assert.False(t, ok)
	assert.Equal(t, StepEnteringDetails, w.Step())
	assert.Equal(t, "Failed to submit booking. Please try again.", w.Errors()["submit"])
	assert.Equal(t, "Sam", w.Details().FirstName)
}

func TestWizard_SubmitSuccess(t *testing.T) {
	w := NewWizard()
	w.SelectSlot(SlotSelection{Time: "10:00"})
	require.True(t, w.Continue())
	w.EnterDetails(validDetails())

	ok := w.Submit(context.Background(), func(context.Context) error { return nil })

	assert.True(t, ok)
	assert.Equal(t, StepSubmitted, w.Step())
	assert.Empty(t, w.Errors())
}

func TestWizard_SubmitOnlyFromDetailsStep(t *testing.T) {
	w := NewWizard()
	assert.False(t, w.Submit(context.Background(), func(context.Context) error { return nil }))
	assert.Equal(t, StepSelectingSlot, w.Step())
}
