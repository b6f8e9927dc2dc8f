package alexa

// ResponseBuilder assembles a ResponseEnvelope the way the skill SDKs do:
// Speak sets the spoken text, Ask keeps the session open with a reprompt,
// EndSession closes it.
type ResponseBuilder struct {
	env ResponseEnvelope
}

func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{
		env: ResponseEnvelope{
			Version: "1.0",
			Response: Response{
				ShouldEndSession: true,
			},
		},
	}
}

// Speak sets the response's spoken text.
func (b *ResponseBuilder) Speak(text string) *ResponseBuilder {
	b.env.Response.OutputSpeech = &OutputSpeech{Type: "PlainText", Text: text}
	return b
}

// Ask sets the reprompt text and keeps the session open.
func (b *ResponseBuilder) Ask(text string) *ResponseBuilder {
	b.env.Response.Reprompt = &Reprompt{
		OutputSpeech: &OutputSpeech{Type: "PlainText", Text: text},
	}
	b.env.Response.ShouldEndSession = false
	return b
}

// EndSession overrides the session-end flag.
func (b *ResponseBuilder) EndSession(end bool) *ResponseBuilder {
	b.env.Response.ShouldEndSession = end
	return b
}

// WithSessionAttributes sets the attribute bag echoed back to the platform.
func (b *ResponseBuilder) WithSessionAttributes(attrs map[string]any) *ResponseBuilder {
	b.env.SessionAttributes = attrs
	return b
}

// Build returns the assembled envelope.
func (b *ResponseBuilder) Build() ResponseEnvelope {
	return b.env
}
