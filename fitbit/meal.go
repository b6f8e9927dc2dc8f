package fitbit

// Fitbit meal type ids.
const (
	MealBreakfast      = 1
	MealMorningSnack   = 2
	MealLunch          = 3
	MealAfternoonSnack = 4
	MealDinner         = 5
	MealAnytime        = 6
)

// MealTypeForHour maps an hour of day (0..23) in the log timezone to a Fitbit
// meal type id. Interval boundaries are half-open: hour 11 is a morning
// snack, hour 12 is lunch.
func MealTypeForHour(hour int) int {
	switch {
	case hour >= 6 && hour < 11:
		return MealBreakfast
	case hour >= 11 && hour < 12:
		return MealMorningSnack
	case hour >= 12 && hour < 16:
		return MealLunch
	case hour >= 16 && hour < 18:
		return MealAfternoonSnack
	case hour >= 18 && hour < 21:
		return MealDinner
	default:
		return MealAnytime
	}
}
