// Package summary assembles the daily nutrition/activity summary: it gathers
// the day's Fitbit data into a coaching prompt and asks the completion API
// for spoken feedback.
package summary

import (
	"fmt"
	"strconv"
	"strings"

	"nicklife"
)

// LoggedFood is one already-logged food entry feeding the prompt.
type LoggedFood struct {
	Name     string
	Calories int
}

// DayData is everything the coaching prompt needs about today.
type DayData struct {
	Age    int
	Weight float64
	Foods  []LoggedFood
}

// BuildPrompt renders the personal-trainer prompt for the day.
func BuildPrompt(day DayData, cfg nicklife.SummaryConfig) string {
	items := make([]string, 0, len(day.Foods))
	for _, f := range day.Foods {
		items = append(items, fmt.Sprintf("%s (%d calories)", f.Name, f.Calories))
	}
	foodList := strings.Join(items, ", ")

	return fmt.Sprintf(
		"Act as a personal trainer / fitness coach and give someone of age %d and weight %s, "+
			"who ate %s today with a goal of being lean and strong feedback on their day and where to improve. "+
			"Target %d calories, %d pounds, daily exercise and healthy meals. Be specific in feedback",
		day.Age,
		strconv.FormatFloat(day.Weight, 'f', -1, 64),
		foodList,
		cfg.TargetCalories,
		cfg.TargetWeight,
	)
}
