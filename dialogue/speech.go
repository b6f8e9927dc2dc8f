package dialogue

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"nicklife/fitbit"
)

const (
	speechWelcome         = "Welcome to Nick Ate! What did Nick Eat?"
	speechStop            = "Thanks. Keep me posted on what you eat."
	speechCancel          = "Come back when you have more food to tell me about!"
	speechCatalogDown     = "I can't access the food log right now."
	speechAuthDown        = "I can't reach your Fitbit account right now."
	speechNotFound        = "I couldn't find that food."
	speechNoSessionYet    = "You have to tell me what you ate first."
	speechSwitchNoSession = "Tell me what you ate first."
	speechOutOfOptions    = "I'm out of options. Let's try a different query."
	speechBadQuantity     = "I didn't catch a valid quantity. How many should I log?"
)

// QuantityError rejects a spoken quantity that isn't a positive number.
type QuantityError struct {
	Raw string
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %q", e.Raw)
}

// parseQuantity turns the raw slot value into a positive finite amount.
func parseQuantity(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, &QuantityError{Raw: raw}
	}
	return v, nil
}

// unitName picks the singular unit name only when the amount is exactly 1.
func unitName(u fitbit.Unit, amount float64) string {
	if amount == 1 {
		return u.Name
	}
	return u.Plural
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// describeFound announces the first match of a fresh search.
func describeFound(c fitbit.FoodCandidate) string {
	return fmt.Sprintf("I found %s, with a default serving size of %s %s and %d calories. Would you like me to log this item?",
		c.Name, formatAmount(c.DefaultServingSize), unitName(c.DefaultUnit, c.DefaultServingSize), c.Calories)
}

// describeNext offers the next candidate while browsing.
func describeNext(c fitbit.FoodCandidate) string {
	return fmt.Sprintf("How about %s, with a default serving size of %s %s and %d calories. Would you like me to log that instead?",
		c.Name, formatAmount(c.DefaultServingSize), unitName(c.DefaultUnit, c.DefaultServingSize), c.Calories)
}

func describeLogged(c fitbit.FoodCandidate) string {
	return fmt.Sprintf("Wicked, logged that %s to Fitbit", c.Name)
}

func describeLoggedQuantity(c fitbit.FoodCandidate, amount float64) string {
	return fmt.Sprintf("Wicked, logged %s %s of %s to Fitbit",
		formatAmount(amount), unitName(c.DefaultUnit, amount), c.Name)
}

func describeWriteFailure(c fitbit.FoodCandidate, status int) string {
	return fmt.Sprintf("I couldn't log that %s. The food log answered with status %d.", c.Name, status)
}
