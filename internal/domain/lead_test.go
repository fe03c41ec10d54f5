package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeadStatus(t *testing.T) {
	for _, status := range LeadStatuses() {
		parsed, err := ParseLeadStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := ParseLeadStatus("closed")
	assert.Error(t, err)
	_, err = ParseLeadStatus("")
	assert.Error(t, err)
	assert.False(t, LeadStatus("NEW").Valid(), "enum values are lowercase")
}

func TestParseLeadSource(t *testing.T) {
	for _, raw := range []string{"website", "instagram", "referral", "linkedin", "other"} {
		parsed, err := ParseLeadSource(raw)
		require.NoError(t, err)
		assert.True(t, parsed.Valid())
	}

	_, err := ParseLeadSource("facebook")
	assert.Error(t, err)
}

func TestLeadUpdate_Empty(t *testing.T) {
	assert.True(t, LeadUpdate{}.Empty())

	name := "Jane"
	assert.False(t, LeadUpdate{FullName: &name}.Empty())
	assert.False(t, LeadUpdate{ClearFollowUp: true}.Empty())
}
