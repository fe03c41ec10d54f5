package domain

import "math"

// DashboardStats is the aggregate view consumed by the dashboard.
type DashboardStats struct {
	Total          int
	NewCount       int
	ContactedCount int
	ConvertedCount int
	ConversionRate int
}

// ComputeDashboardStats derives counts and the conversion rate from a lead
// collection. The rate is the rounded percentage of converted leads, 0 when
// the collection is empty.
func ComputeDashboardStats(leads []Lead) DashboardStats {
	stats := DashboardStats{Total: len(leads)}
	for _, lead := range leads {
		switch lead.Status {
		case LeadStatusNew:
			stats.NewCount++
		case LeadStatusContacted:
			stats.ContactedCount++
		case LeadStatusConverted:
			stats.ConvertedCount++
		}
	}
	if stats.Total > 0 {
		stats.ConversionRate = int(math.Round(float64(stats.ConvertedCount) / float64(stats.Total) * 100))
	}
	return stats
}
