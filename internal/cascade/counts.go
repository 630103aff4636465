package cascade

import (
	"fmt"
	"strings"
)

// DeleteCounts holds the descendant tally shown to the user before a
// cascade delete is confirmed. The target node itself is not counted.
type DeleteCounts struct {
	Workouts  int `json:"workouts"`
	Exercises int `json:"exercises"`
	Sets      int `json:"sets"`
}

func (c DeleteCounts) TotalItems() int {
	return c.Workouts + c.Exercises + c.Sets
}

func (c DeleteCounts) HasItems() bool {
	return c.TotalItems() > 0
}

// GetSummary renders the counts for a confirmation dialog, e.g.
// "2 workouts, 6 exercises, 24 sets". Zero categories are skipped,
// all-zero counts yield an empty string.
func (c DeleteCounts) GetSummary() string {
	var parts []string
	if c.Workouts > 0 {
		parts = append(parts, pluralize(c.Workouts, "workout"))
	}
	if c.Exercises > 0 {
		parts = append(parts, pluralize(c.Exercises, "exercise"))
	}
	if c.Sets > 0 {
		parts = append(parts, pluralize(c.Sets, "set"))
	}
	return strings.Join(parts, ", ")
}

func pluralize(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
