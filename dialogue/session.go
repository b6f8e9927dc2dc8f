// Package dialogue implements the food-logging conversation: search the
// catalog, browse candidates, confirm or adjust the quantity, commit.
package dialogue

import (
	"encoding/json"
	"fmt"

	"nicklife/fitbit"
)

// attributeKey is where the session rides inside the platform attribute bag.
const attributeKey = "foodSession"

// Session is the per-conversation state: the candidate list from the last
// search and an index into it. A nil *Session means no active session.
// Invariant: 0 <= CurrentIndex < len(Candidates) whenever a session exists.
type Session struct {
	Candidates   []fitbit.FoodCandidate `json:"candidates"`
	CurrentIndex int                    `json:"current_index"`
}

// Current returns the candidate the conversation is pointed at.
func (s *Session) Current() fitbit.FoodCandidate {
	return s.Candidates[s.CurrentIndex]
}

// FromAttributes decodes the session out of the platform attribute bag.
// Returns (nil, nil) when no session is stored. A stored session that fails
// to decode or violates the index invariant is an error, never a
// half-usable session.
func FromAttributes(attrs map[string]any) (*Session, error) {
	raw, ok := attrs[attributeKey]
	if !ok {
		return nil, nil
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encoding session attributes: %w", err)
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decoding session attributes: %w", err)
	}

	if len(s.Candidates) == 0 {
		return nil, fmt.Errorf("stored session has no candidates")
	}
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Candidates) {
		return nil, fmt.Errorf("stored session index %d out of range [0,%d)", s.CurrentIndex, len(s.Candidates))
	}
	return &s, nil
}

// ToAttributes encodes the session into a platform attribute bag.
func (s *Session) ToAttributes() map[string]any {
	// marshal -> map[string]any so the bag round-trips as plain JSON
	b, _ := json.Marshal(s)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return map[string]any{attributeKey: m}
}
