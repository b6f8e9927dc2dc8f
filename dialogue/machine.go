package dialogue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/trace"

	"nicklife"
	"nicklife/alexa"
	"nicklife/fitbit"
)

// Reply is what a turn speaks and whether the conversation ends with it.
type Reply struct {
	Speech     string
	EndSession bool
}

type tokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type catalogSearcher interface {
	SearchFoods(ctx context.Context, accessToken, query string) ([]fitbit.FoodCandidate, error)
}

type foodLogWriter interface {
	LogFood(ctx context.Context, accessToken string, foodID, unitID int64, amount float64) (string, error)
}

// Machine drives the food-logging conversation. Each method handles one
// intent: it takes the current session (nil when none), returns the reply and
// the session to carry forward (nil clears it). Every failure path either
// preserves a fully valid session or clears it entirely.
type Machine struct {
	tokens         tokenSource
	catalog        catalogSearcher
	writer         foodLogWriter
	turns          nicklife.TurnLogger
	tracerProvider *trace.TracerProvider
	foodsLogged    metric.Int64Counter
}

// NewMachine initializes a new dialogue machine.
func NewMachine(tokens tokenSource, catalog catalogSearcher, writer foodLogWriter, turns nicklife.TurnLogger, tracerProvider *trace.TracerProvider) *Machine {
	foodsLogged, err := otel.Meter("nickate").Int64Counter(
		"nickate.foods_logged",
		metric.WithDescription("Food entries committed to the food log"),
	)
	if err != nil {
		slog.Warn("DIALOGUE: Failed to create foods_logged counter", "error", err)
	}

	return &Machine{
		tokens:         tokens,
		catalog:        catalog,
		writer:         writer,
		turns:          turns,
		tracerProvider: tracerProvider,
		foodsLogged:    foodsLogged,
	}
}

// LogFood starts a conversation: search the catalog for the spoken food and
// offer the top match. Failure and empty-result paths leave no session behind.
func (m *Machine) LogFood(ctx context.Context, sess *Session, foodItem string) (Reply, *Session) {
	ctx, span := otel.Tracer(nicklife.TracerNameNickate).Start(ctx, "Machine.LogFood")
	defer span.End()

	slog.Info("DIALOGUE: LogFood", "food_item", foodItem)

	token, err := m.tokens.AccessToken(ctx)
	if err != nil {
		slog.Error("DIALOGUE: Could not obtain credential", "error", err)
		return m.turn(alexa.IntentLogFood, Reply{Speech: speechAuthDown}, sess, err), sess
	}

	candidates, err := m.catalog.SearchFoods(ctx, token, foodItem)
	if err != nil {
		if !errors.Is(err, fitbit.ErrCatalogUnavailable) {
			slog.Error("DIALOGUE: Search failed", "error", err)
		}
		return m.turn(alexa.IntentLogFood, Reply{Speech: speechCatalogDown}, sess, err), sess
	}
	if len(candidates) == 0 {
		return m.turn(alexa.IntentLogFood, Reply{Speech: speechNotFound}, sess, nil), sess
	}

	next := &Session{Candidates: candidates, CurrentIndex: 0}
	reply := Reply{Speech: describeFound(next.Current())}
	return m.turn(alexa.IntentLogFood, reply, next, nil), next
}

// Switch moves to the next candidate. Running past the last one clears the
// session rather than leaving a dangling index.
func (m *Machine) Switch(ctx context.Context, sess *Session) (Reply, *Session) {
	_, span := otel.Tracer(nicklife.TracerNameNickate).Start(ctx, "Machine.Switch")
	defer span.End()

	if sess == nil {
		return m.turn(alexa.IntentSwitchFood, Reply{Speech: speechSwitchNoSession}, nil, nil), nil
	}

	if sess.CurrentIndex+1 >= len(sess.Candidates) {
		slog.Info("DIALOGUE: Candidates exhausted", "candidates", len(sess.Candidates))
		return m.turn(alexa.IntentSwitchFood, Reply{Speech: speechOutOfOptions}, nil, nil), nil
	}

	sess.CurrentIndex++
	reply := Reply{Speech: describeNext(sess.Current())}
	return m.turn(alexa.IntentSwitchFood, reply, sess, nil), sess
}

// Confirm commits the current candidate at its default serving size.
func (m *Machine) Confirm(ctx context.Context, sess *Session) (Reply, *Session) {
	ctx, span := otel.Tracer(nicklife.TracerNameNickate).Start(ctx, "Machine.Confirm")
	defer span.End()

	if sess == nil {
		return m.turn(alexa.IntentConfirmFood, Reply{Speech: speechNoSessionYet}, nil, nil), nil
	}

	selected := sess.Current()
	return m.commit(ctx, alexa.IntentConfirmFood, sess, selected.DefaultServingSize, describeLogged(selected))
}

// UpdateQuantity commits the current candidate with a user-spoken quantity
// instead of the default. An unparseable quantity re-prompts and keeps the
// session: nothing was committed yet.
func (m *Machine) UpdateQuantity(ctx context.Context, sess *Session, raw string) (Reply, *Session) {
	ctx, span := otel.Tracer(nicklife.TracerNameNickate).Start(ctx, "Machine.UpdateQuantity")
	defer span.End()

	if sess == nil {
		return m.turn(alexa.IntentUpdateQuantity, Reply{Speech: speechNoSessionYet}, nil, nil), nil
	}

	amount, err := parseQuantity(raw)
	if err != nil {
		slog.Info("DIALOGUE: Rejected quantity", "raw", raw)
		return m.turn(alexa.IntentUpdateQuantity, Reply{Speech: speechBadQuantity}, sess, err), sess
	}

	selected := sess.Current()
	return m.commit(ctx, alexa.IntentUpdateQuantity, sess, amount, describeLoggedQuantity(selected, amount))
}

// commit writes the log entry and ends the conversation. The session is
// cleared whether the write succeeds or fails; a stale candidate list is
// worse than asking the user to search again.
func (m *Machine) commit(ctx context.Context, intent string, sess *Session, amount float64, successSpeech string) (Reply, *Session) {
	selected := sess.Current()

	token, err := m.tokens.AccessToken(ctx)
	if err != nil {
		slog.Error("DIALOGUE: Could not obtain credential for commit", "error", err)
		return m.turn(intent, Reply{Speech: speechAuthDown}, sess, err), sess
	}

	_, err = m.writer.LogFood(ctx, token, selected.FoodID, selected.DefaultUnit.ID, amount)
	if err != nil {
		var writeErr *fitbit.LogWriteError
		if errors.As(err, &writeErr) {
			reply := Reply{Speech: describeWriteFailure(selected, writeErr.StatusCode), EndSession: true}
			return m.turn(intent, reply, nil, err), nil
		}
		slog.Error("DIALOGUE: Food log write failed", "error", err)
		reply := Reply{Speech: speechCatalogDown, EndSession: true}
		return m.turn(intent, reply, nil, err), nil
	}

	if m.foodsLogged != nil {
		m.foodsLogged.Add(ctx, 1)
	}

	reply := Reply{Speech: successSpeech, EndSession: true}
	return m.turn(intent, reply, nil, nil), nil
}

func (m *Machine) turn(intent string, reply Reply, sess *Session, err error) Reply {
	tl := nicklife.TurnLog{
		Intent:     intent,
		Timestamp:  time.Now(),
		Speech:     reply.Speech,
		EndSession: reply.EndSession,
	}
	if sess != nil {
		tl.Candidates = len(sess.Candidates)
		tl.Index = sess.CurrentIndex
	}
	if err != nil {
		tl.Error = err.Error()
	}
	if lerr := m.turns.LogTurn(tl); lerr != nil {
		slog.Warn("DIALOGUE: Failed to log turn", "error", lerr)
	}
	return reply
}
