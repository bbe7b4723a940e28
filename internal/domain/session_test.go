package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	donor, err := NewSession("u1", UserRoleDonor)
	require.NoError(t, err)
	assert.IsType(t, DonorSession{}, donor)
	assert.Equal(t, "u1", donor.UserID())
	assert.True(t, donor.Capabilities().ScheduleDonations)
	assert.False(t, donor.Capabilities().ReviewRequests)

	recipient, err := NewSession("u2", UserRoleRecipient)
	require.NoError(t, err)
	assert.Equal(t, UserRoleRecipient, recipient.Role())
	assert.True(t, recipient.Capabilities().RequestBlood)
	assert.False(t, recipient.Capabilities().ScheduleDonations)

	admin, err := NewSession("u3", UserRoleAdmin)
	require.NoError(t, err)
	caps := admin.Capabilities()
	assert.True(t, caps.ReviewRequests && caps.ManageUsers && caps.ViewInventory)
	assert.False(t, caps.RequestBlood)

	_, err = NewSession("u4", "nurse")
	assert.Error(t, err)
}

func TestCapabilitiesHas(t *testing.T) {
	admin, _ := NewSession("a", UserRoleAdmin)
	assert.True(t, admin.Capabilities().Has(CapReviewRequests))
	assert.False(t, admin.Capabilities().Has(CapScheduleDonations))
	assert.False(t, admin.Capabilities().Has("launch_rockets"))

	donor, _ := NewSession("d", UserRoleDonor)
	assert.True(t, donor.Capabilities().Has(CapScheduleDonations))
	assert.True(t, donor.Capabilities().Has(CapSearchInventory))
	assert.False(t, donor.Capabilities().Has(CapViewInventory))
}

func TestUserValidateAndSearch(t *testing.T) {
	u := User{Name: "John Smith", Email: "john.smith@email.com", Role: UserRoleDonor, BloodType: BloodTypeOPos}
	assert.NoError(t, u.Validate())

	assert.True(t, u.MatchesSearch("SMITH"))
	assert.True(t, u.MatchesSearch("o+"))
	assert.True(t, u.MatchesSearch(""))
	assert.False(t, u.MatchesSearch("sarah"))

	bad := u
	bad.Email = "john"
	assert.True(t, IsValidation(bad.Validate()))

	bad = u
	bad.Role = "guest"
	assert.True(t, IsValidation(bad.Validate()))
}

func TestParseBloodType(t *testing.T) {
	for _, bt := range AllBloodTypes {
		got, err := ParseBloodType(string(bt))
		require.NoError(t, err)
		assert.Equal(t, bt, got)
	}
	got, err := ParseBloodType(" ab- ")
	require.NoError(t, err)
	assert.Equal(t, BloodTypeABNeg, got)

	_, err = ParseBloodType("AB")
	assert.True(t, IsValidation(err))
}
