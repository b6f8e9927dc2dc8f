package summary

import (
	"context"
	"log/slog"

	"nicklife"
	"nicklife/alexa"
	"nicklife/fitbit"
)

// attributePrompt is where the assembled prompt rides between the launch turn
// and the summary turn.
const attributePrompt = "prompt"

const (
	speechWelcome     = "Welcome to NickLife, the hub for all your Nick-related needs!"
	speechGoodbye     = "Thanks for talking, I'll be here for all your Nick-related inquiries"
	speechAuthDown    = "I can't reach your Fitbit account right now."
	speechFitbitDown  = "I couldn't pull your day from Fitbit."
	speechNoPrompt    = "Open the skill first so I can pull your day together."
	speechSummaryDown = "I can't put your summary together right now."
)

type tokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// dayFetcher is the slice of the Fitbit client the launch turn needs.
type dayFetcher interface {
	FetchProfile(ctx context.Context, accessToken string) (fitbit.Profile, error)
	FetchWeightToday(ctx context.Context, accessToken string) (fitbit.WeightLog, error)
	FetchFoodsToday(ctx context.Context, accessToken string) (fitbit.FoodLog, error)
	FetchActivitiesToday(ctx context.Context, accessToken string) (fitbit.ActivitySummary, error)
	FetchSleepToday(ctx context.Context, accessToken string) (fitbit.SleepLog, error)
}

type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewSkill wires the daily-summary skill's handlers.
func NewSkill(tokens tokenSource, fb dayFetcher, llm completer, cfg nicklife.SummaryConfig) *alexa.Skill {
	return alexa.NewSkill(
		&LaunchHandler{tokens: tokens, fitbit: fb, cfg: cfg},
		&DailySummaryHandler{llm: llm},
		&StopHandler{},
		&CancelHandler{},
	)
}

// LaunchHandler gathers today's Fitbit data into the coaching prompt and
// parks it in session attributes for the summary turn.
type LaunchHandler struct {
	tokens tokenSource
	fitbit dayFetcher
	cfg    nicklife.SummaryConfig
}

func (h *LaunchHandler) CanHandle(env alexa.RequestEnvelope) bool {
	return env.IsRequestType(alexa.RequestTypeLaunch)
}

func (h *LaunchHandler) Handle(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
	token, err := h.tokens.AccessToken(ctx)
	if err != nil {
		slog.Error("SUMMARY: Could not obtain credential", "error", err)
		return alexa.NewResponseBuilder().Speak(speechAuthDown).Build(), nil
	}

	profile, err := h.fitbit.FetchProfile(ctx, token)
	if err != nil {
		slog.Error("SUMMARY: Profile fetch failed", "error", err)
		return alexa.NewResponseBuilder().Speak(speechFitbitDown).Build(), nil
	}

	foods, err := h.fitbit.FetchFoodsToday(ctx, token)
	if err != nil {
		slog.Error("SUMMARY: Food log fetch failed", "error", err)
		return alexa.NewResponseBuilder().Speak(speechFitbitDown).Build(), nil
	}

	// Weight falls back rather than failing the turn; the prompt still works.
	weight := h.cfg.FallbackWeight
	if wl, err := h.fitbit.FetchWeightToday(ctx, token); err != nil {
		slog.Warn("SUMMARY: Weight fetch failed, using fallback", "error", err, "fallback", weight)
	} else if len(wl.Weight) > 0 {
		weight = wl.Weight[0].Weight
	}

	// Activity and sleep are observational context only.
	if activities, err := h.fitbit.FetchActivitiesToday(ctx, token); err != nil {
		slog.Warn("SUMMARY: Activity fetch failed", "error", err)
	} else {
		slog.Info("SUMMARY: Activity data", "steps", activities.Summary.Steps, "calories_out", activities.Summary.CaloriesOut)
	}
	if sleep, err := h.fitbit.FetchSleepToday(ctx, token); err != nil {
		slog.Warn("SUMMARY: Sleep fetch failed", "error", err)
	} else {
		slog.Info("SUMMARY: Sleep data", "minutes_asleep", sleep.Summary.TotalMinutesAsleep)
	}

	day := DayData{Age: profile.User.Age, Weight: weight}
	for _, f := range foods.Foods {
		day.Foods = append(day.Foods, LoggedFood{Name: f.LoggedFood.Name, Calories: f.LoggedFood.Calories})
	}

	prompt := BuildPrompt(day, h.cfg)
	slog.Info("SUMMARY: Prompt assembled", "age", day.Age, "weight", day.Weight, "foods", len(day.Foods))

	return alexa.NewResponseBuilder().
		Speak(speechWelcome).
		Ask(speechWelcome).
		WithSessionAttributes(map[string]any{attributePrompt: prompt}).
		Build(), nil
}

// DailySummaryHandler sends the parked prompt to the completion API and
// speaks the answer.
type DailySummaryHandler struct {
	llm completer
}

func (h *DailySummaryHandler) CanHandle(env alexa.RequestEnvelope) bool {
	return env.IsIntentName(alexa.IntentDailySummary)
}

func (h *DailySummaryHandler) Handle(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
	prompt, ok := env.SessionAttributes()[attributePrompt].(string)
	if !ok || prompt == "" {
		return alexa.NewResponseBuilder().Speak(speechNoPrompt).Build(), nil
	}

	text, err := h.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Error("SUMMARY: Completion failed", "error", err)
		return alexa.NewResponseBuilder().Speak(speechSummaryDown).Build(), nil
	}

	return alexa.NewResponseBuilder().Speak(text).Build(), nil
}

type StopHandler struct{}

func (h *StopHandler) CanHandle(env alexa.RequestEnvelope) bool {
	return env.IsIntentName(alexa.IntentStop)
}

func (h *StopHandler) Handle(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
	return alexa.NewResponseBuilder().Speak(speechGoodbye).Build(), nil
}

type CancelHandler struct{}

func (h *CancelHandler) CanHandle(env alexa.RequestEnvelope) bool {
	return env.IsIntentName(alexa.IntentCancel)
}

func (h *CancelHandler) Handle(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
	return alexa.NewResponseBuilder().Speak(speechGoodbye).Build(), nil
}
