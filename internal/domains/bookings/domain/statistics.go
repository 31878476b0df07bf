package domain

// Statistics summarizes bookings by status bucket.
type Statistics struct {
	Total     int
	Delivered int
	InTransit int
	Pending   int
}

// Add counts one booking. At Warehouse and Out for Delivery only count
// toward Total.
func (s *Statistics) Add(status Status) {
	s.Total++
	switch status {
	case StatusDelivered:
		s.Delivered++
	case StatusInTransit:
		s.InTransit++
	case StatusBooked, StatusProcessing:
		s.Pending++
	}
}

// Tally builds statistics from a list of statuses.
func Tally(statuses []Status) Statistics {
	var stats Statistics
	for _, status := range statuses {
		stats.Add(status)
	}
	return stats
}

// FromCounts builds statistics from per-status row counts.
func FromCounts(counts map[Status]int) Statistics {
	var stats Statistics
	for status, n := range counts {
		for i := 0; i < n; i++ {
			stats.Add(status)
		}
	}
	return stats
}
