// Package alexa holds the voice-platform boundary: the request/response
// envelopes exchanged with the skill runtime and a small handler-dispatch
// skill. Speech is plain text; intents arrive with named slot values already
// parsed.
package alexa

// Request type and intent names this app dispatches on.
const (
	RequestTypeLaunch = "LaunchRequest"
	RequestTypeIntent = "IntentRequest"

	IntentLogFood        = "LogFoodIntent"
	IntentConfirmFood    = "ConfirmFoodIntent"
	IntentUpdateQuantity = "UpdateQuantityIntent"
	IntentSwitchFood     = "SwitchFoodIntent"
	IntentDailySummary   = "DailySummaryIntent"
	IntentStop           = "AMAZON.StopIntent"
	IntentCancel         = "AMAZON.CancelIntent"
)

// RequestEnvelope is the inbound request from the voice platform.
type RequestEnvelope struct {
	Version string   `json:"version"`
	Session *Session `json:"session,omitempty"`
	Request Request  `json:"request"`
}

// Session carries per-conversation mutable attributes surviving across
// intents within one conversation.
type Session struct {
	New        bool           `json:"new"`
	SessionID  string         `json:"sessionId"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Request is the request body inside the envelope.
type Request struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId"`
	Timestamp string  `json:"timestamp"`
	Locale    string  `json:"locale"`
	Intent    *Intent `json:"intent,omitempty"`
}

// Intent is a named user request with zero or more slot values.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

// Slot is one typed slot value within an intent.
type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// IsRequestType reports whether the envelope carries a request of type t.
func (e RequestEnvelope) IsRequestType(t string) bool {
	return e.Request.Type == t
}

// IsIntentName reports whether the envelope carries the named intent.
func (e RequestEnvelope) IsIntentName(name string) bool {
	return e.Request.Type == RequestTypeIntent &&
		e.Request.Intent != nil &&
		e.Request.Intent.Name == name
}

// SlotValue returns the named slot's value, or "" when absent.
func (e RequestEnvelope) SlotValue(name string) string {
	if e.Request.Intent == nil {
		return ""
	}
	return e.Request.Intent.Slots[name].Value
}

// SessionAttributes returns the session attribute bag, never nil.
func (e RequestEnvelope) SessionAttributes() map[string]any {
	if e.Session == nil || e.Session.Attributes == nil {
		return map[string]any{}
	}
	return e.Session.Attributes
}

// ResponseEnvelope is the outbound response to the voice platform.
type ResponseEnvelope struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes,omitempty"`
	Response          Response       `json:"response"`
}

// Response is the spoken part of the envelope plus the session-end flag.
type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

// OutputSpeech is plain-text speech.
type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Reprompt is spoken when the user stays silent after an open question.
type Reprompt struct {
	OutputSpeech *OutputSpeech `json:"outputSpeech,omitempty"`
}
