package alexa

import (
	"context"
	"log/slog"
)

// Handler handles one kind of inbound request.
type Handler interface {
	CanHandle(env RequestEnvelope) bool
	Handle(ctx context.Context, env RequestEnvelope) (ResponseEnvelope, error)
}

// Skill dispatches an inbound envelope to the first handler that claims it.
type Skill struct {
	handlers []Handler
}

func NewSkill(handlers ...Handler) *Skill {
	return &Skill{handlers: handlers}
}

// HandleRequest routes the envelope. An unclaimed request gets a polite
// fallback rather than an error; the platform retries nothing either way.
func (s *Skill) HandleRequest(ctx context.Context, env RequestEnvelope) (ResponseEnvelope, error) {
	for _, h := range s.handlers {
		if h.CanHandle(env) {
			return h.Handle(ctx, env)
		}
	}

	intent := ""
	if env.Request.Intent != nil {
		intent = env.Request.Intent.Name
	}
	slog.Warn("SKILL: No handler claimed request", "type", env.Request.Type, "intent", intent)

	return NewResponseBuilder().
		Speak("Sorry, I didn't catch that.").
		Build(), nil
}
