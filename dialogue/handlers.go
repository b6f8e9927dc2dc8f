package dialogue

import (
	"context"
	"log/slog"

	"nicklife/alexa"
)

// NewSkill wires the food-logging skill's handlers around one machine.
func NewSkill(machine *Machine) *alexa.Skill {
	return alexa.NewSkill(
		&LaunchHandler{},
		&LogFoodHandler{machine: machine},
		&ConfirmFoodHandler{machine: machine},
		&UpdateQuantityHandler{machine: machine},
		&SwitchFoodHandler{machine: machine},
		&StopHandler{},
		&CancelHandler{},
	)
}

// sessionFrom decodes the session out of the envelope. Unreadable or
// inconsistent stored state is dropped: the handlers then behave as if no
// session existed, which is the only safe reading of it.
func sessionFrom(env alexa.RequestEnvelope) *Session {
	sess, err := FromAttributes(env.SessionAttributes())
	if err != nil {
		slog.Warn("DIALOGUE: Dropping unreadable session attributes", "error", err)
		return nil
	}
	return sess
}

// respond converts a machine reply plus the surviving session into a
// platform response. Open questions repeat the speech as the reprompt.
func respond(reply Reply, sess *Session) alexa.ResponseEnvelope {
	b := alexa.NewResponseBuilder().Speak(reply.Speech)
	if !reply.EndSession {
		b.Ask(reply.Speech)
	}
	if sess != nil {
		b.WithSessionAttributes(sess.ToAttributes())
	}
	return b.Build()
}

type LaunchHandler struct{}

func (h *LaunchHandler) CanHandle(env alexa.RequestEnvelope) bool {
	return env.IsRequestType(alexa.RequestTypeLaunch)
}

func (h *LaunchHandler) Handle(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
	return alexa.NewResponseBuilder().Speak(speechWelcome).Ask(speechWelcome).Build(), nil
}

type LogFoodHandler struct {
	machine *Machine
}

func (h *LogFoodHandler) CanHandle(env alexa.RequestEnvelope) bool {
	return env.IsIntentName(alexa.IntentLogFood)
}

func (h *LogFoodHandler) Handle(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
	reply, sess := h.machine.LogFood(ctx, sessionFrom(env), env.SlotValue("FoodItem"))
	return respond(reply, sess), nil
}

type ConfirmFoodHandler struct {
	machine *Machine
}

func (h *ConfirmFoodHandler) CanHandle(env alexa.RequestEnvelope) bool {
	return env.IsIntentName(alexa.IntentConfirmFood)
}

func (h *ConfirmFoodHandler) Handle(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
	reply, sess := h.machine.Confirm(ctx, sessionFrom(env))
	return respond(reply, sess), nil
}

type UpdateQuantityHandler struct {
	machine *Machine
}

func (h *UpdateQuantityHandler) CanHandle(env alexa.RequestEnvelope) bool {
	return env.IsIntentName(alexa.IntentUpdateQuantity)
}

func (h *UpdateQuantityHandler) Handle(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
	reply, sess := h.machine.UpdateQuantity(ctx, sessionFrom(env), env.SlotValue("quantity"))
	return respond(reply, sess), nil
}

type SwitchFoodHandler struct {
	machine *Machine
}

func (h *SwitchFoodHandler) CanHandle(env alexa.RequestEnvelope) bool {
	return env.IsIntentName(alexa.IntentSwitchFood)
}

func (h *SwitchFoodHandler) Handle(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
	reply, sess := h.machine.Switch(ctx, sessionFrom(env))
	return respond(reply, sess), nil
}

type StopHandler struct{}

func (h *StopHandler) CanHandle(env alexa.RequestEnvelope) bool {
	return env.IsIntentName(alexa.IntentStop)
}

func (h *StopHandler) Handle(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
	return alexa.NewResponseBuilder().Speak(speechStop).Build(), nil
}

type CancelHandler struct{}

func (h *CancelHandler) CanHandle(env alexa.RequestEnvelope) bool {
	return env.IsIntentName(alexa.IntentCancel)
}

func (h *CancelHandler) Handle(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
	return alexa.NewResponseBuilder().Speak(speechCancel).Build(), nil
}
