package domain

import "fmt"

// Priority level values used across the taxonomy and tickets.
const (
	PriorityLowest  = 1
	PriorityMedium  = 2
	PriorityHighest = 3
)

// PriorityLevel is an urgency tier attached to organizational units and
// tickets. Reference data: created once by seeding, never by user action.
type PriorityLevel struct {
	Level       int
	Description string
}

// ValidPriorityLevel reports whether level is inside the allowed domain.
func ValidPriorityLevel(level int) bool {
	return level >= PriorityLowest && level <= PriorityHighest
}

// PriorityDescription returns the canonical label for a level.
func PriorityDescription(level int) string {
	switch level {
	case PriorityLowest:
		return "Level 1 (Lowest)"
	case PriorityMedium:
		return "Level 2 (Medium)"
	case PriorityHighest:
		return "Level 3 (Highest)"
	default:
		return fmt.Sprintf("Level %d", level)
	}
}
