package fitbit

// Unit is a Fitbit serving unit with its singular and plural spoken forms.
type Unit struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Plural string `json:"plural"`
}

// FoodCandidate is one food-catalog search result. Candidates are immutable
// once fetched; the slice order is the catalog's relevance order.
type FoodCandidate struct {
	FoodID             int64   `json:"foodId"`
	Name               string  `json:"name"`
	Calories           int     `json:"calories"`
	DefaultServingSize float64 `json:"defaultServingSize"`
	DefaultUnit        Unit    `json:"defaultUnit"`
}

type searchResponse struct {
	Foods []FoodCandidate `json:"foods"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Profile is the subset of the Fitbit profile endpoint used here.
type Profile struct {
	User struct {
		Age      int    `json:"age"`
		FullName string `json:"fullName"`
	} `json:"user"`
}

// WeightEntry is one body-weight measurement.
type WeightEntry struct {
	Weight float64 `json:"weight"`
}

// WeightLog is the body-weight log for a day.
type WeightLog struct {
	Weight []WeightEntry `json:"weight"`
}

// LoggedFood is one already-committed food-log entry.
type LoggedFood struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// FoodLogEntry wraps a logged food the way the API nests it.
type FoodLogEntry struct {
	LoggedFood LoggedFood `json:"loggedFood"`
}

// FoodLog is the food log for a day.
type FoodLog struct {
	Foods []FoodLogEntry `json:"foods"`
}

// ActivitySummary is the activity summary for a day.
type ActivitySummary struct {
	Summary struct {
		CaloriesOut int `json:"caloriesOut"`
		Steps       int `json:"steps"`
	} `json:"summary"`
}

// SleepLog is the sleep log for a day.
type SleepLog struct {
	Summary struct {
		TotalMinutesAsleep int `json:"totalMinutesAsleep"`
	} `json:"summary"`
}
