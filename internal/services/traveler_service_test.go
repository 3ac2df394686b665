package services

import (
	"testing"

	"tourdesk/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestTravelerRegisterAndUpdate(t *testing.T) {
	store := newFakeTravelers()
	svc := TravelerService{Travelers: store, IDs: &fakeIDs{}, Mail: &fakeMail{}, Now: fixedClock}

	tr, err := svc.Register(TravelerInput{FullName: "Asha Rao", Email: "ASHA@example.com", Phone: "9000000001"})
	require.NoError(t, err)
	require.Equal(t, "asha@example.com", tr.Email)
	require.True(t, tr.Refund.IsZero())

	_, err = svc.Register(TravelerInput{FullName: "Other", Email: "asha@example.com", Phone: "9000000099"})
	require.True(t, domain.IsConflict(err), "duplicate email")
	_, err = svc.Register(TravelerInput{FullName: "Other", Email: "other@example.com", Phone: "9000000001"})
	require.True(t, domain.IsConflict(err), "duplicate phone")

	// Updating the same record keeps its own contacts available.
	got, err := svc.Update(tr.ID, TravelerInput{FullName: "Asha R Rao", Email: "asha@example.com", Phone: "9000000001", Address: "Pune"})
	require.NoError(t, err)
	require.Equal(t, "Asha R Rao", got.FullName)
	require.Equal(t, "Pune", got.Address)
}

func TestTravelerValidation(t *testing.T) {
	svc := TravelerService{Travelers: newFakeTravelers(), IDs: &fakeIDs{}, Now: fixedClock}

	_, err := svc.Register(TravelerInput{Email: "a@b.c", Phone: "1"})
	require.True(t, domain.IsValidation(err), "missing name")
	_, err = svc.Register(TravelerInput{FullName: "X", Email: "not-an-email", Phone: "1"})
	require.True(t, domain.IsValidation(err), "bad email")
	_, err = svc.Register(TravelerInput{FullName: "X", Email: "a@b.c"})
	require.True(t, domain.IsValidation(err), "missing phone")
}

func TestAgentRegisterAndDelete(t *testing.T) {
	store := newFakeAgents()
	svc := AgentService{Agents: store, IDs: &fakeIDs{}, Now: fixedClock}

	a, err := svc.Register(TravelerInput{FullName: "Vikram Shah", Email: "vikram@example.com", Phone: "9000000002"})
	require.NoError(t, err)
	require.True(t, a.Coins.IsZero())

	require.NoError(t, svc.Delete(a.ID))
	_, err = svc.Get(a.ID)
	require.True(t, domain.IsNotFound(err))
}
