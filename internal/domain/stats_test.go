package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func leadWithStatus(status LeadStatus) Lead {
	return Lead{FullName: "Lead", Email: "lead@example.com", Source: LeadSourceWebsite, Status: status}
}

func TestComputeDashboardStats_Empty(t *testing.T) {
	stats := ComputeDashboardStats(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.ConversionRate)
}

func TestComputeDashboardStats_CountsSumToTotal(t *testing.T) {
	leads := []Lead{
		leadWithStatus(LeadStatusNew),
		leadWithStatus(LeadStatusNew),
		leadWithStatus(LeadStatusContacted),
		leadWithStatus(LeadStatusConverted),
	}

	stats := ComputeDashboardStats(leads)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.NewCount)
	assert.Equal(t, 1, stats.ContactedCount)
	assert.Equal(t, 1, stats.ConvertedCount)
	assert.Equal(t, stats.Total, stats.NewCount+stats.ContactedCount+stats.ConvertedCount)
}

func TestComputeDashboardStats_ConversionRateRounds(t *testing.T) {
	cases := []struct {
		name      string
		converted int
		others    int
		want      int
	}{
		{"all converted", 1, 0, 100},
		{"one of three", 1, 2, 33},
		{"two of three", 2, 1, 67},
		{"half", 1, 1, 50},
		{"none", 0, 5, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var leads []Lead
			for i := 0; i < tc.converted; i++ {
				leads = append(leads, leadWithStatus(LeadStatusConverted))
			}
			for i := 0; i < tc.others; i++ {
				leads = append(leads, leadWithStatus(LeadStatusNew))
			}

			assert.Equal(t, tc.want, ComputeDashboardStats(leads).ConversionRate)
		})
	}
}
