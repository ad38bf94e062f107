package skill

// Request types sent by the voice platform.
const (
	RequestLaunch       = "LaunchRequest"
	RequestIntent       = "IntentRequest"
	RequestSessionEnded = "SessionEndedRequest"
)

// EnvelopeVersion is written on every response envelope.
const EnvelopeVersion = "1.0"

// RequestEnvelope is the JSON body the platform posts for each turn.
type RequestEnvelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Request `json:"request"`
}

// Session identifies the conversation and carries its attributes.
type Session struct {
	ID          string      `json:"sessionId"`
	New         bool        `json:"new"`
	Application Application `json:"application"`
	Attributes  Attributes  `json:"attributes,omitempty"`
}

// Application identifies the skill the request was addressed to.
type Application struct {
	ApplicationID string `json:"applicationId"`
}

// Request describes what the user did this turn.
type Request struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId"`
	Timestamp string  `json:"timestamp,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Intent    *Intent `json:"intent,omitempty"`
}

// Intent is the recognised utterance category.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

// Slot is a named value extracted from the utterance.
type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// ResponseEnvelope is the JSON body returned to the platform.
type ResponseEnvelope struct {
	Version           string       `json:"version"`
	SessionAttributes Attributes   `json:"sessionAttributes,omitempty"`
	Response          WireResponse `json:"response"`
}

// WireResponse is the platform representation of a Response.
type WireResponse struct {
	OutputSpeech     *WireSpeech   `json:"outputSpeech,omitempty"`
	Card             *WireCard     `json:"card,omitempty"`
	Reprompt         *WireReprompt `json:"reprompt,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

// WireSpeech carries text for PlainText speech and ssml for SSML speech.
type WireSpeech struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	SSML string `json:"ssml,omitempty"`
}

// WireCard is a simple text card.
type WireCard struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// WireReprompt wraps the reprompt speech.
type WireReprompt struct {
	OutputSpeech WireSpeech `json:"outputSpeech"`
}

// NewResponseEnvelope converts a Response and the attributes to persist into
// the platform wire format.
func NewResponseEnvelope(resp Response, attrs Attributes) *ResponseEnvelope {
	speech := toWireSpeech(resp.Speech)
	wire := WireResponse{
		OutputSpeech:     &speech,
		ShouldEndSession: resp.ShouldEndSession,
	}
	if resp.Reprompt != nil {
		wire.Reprompt = &WireReprompt{OutputSpeech: toWireSpeech(*resp.Reprompt)}
	}
	if resp.Card != nil {
		wire.Card = &WireCard{Type: "Simple", Title: resp.Card.Title, Content: resp.Card.Content}
	}

	return &ResponseEnvelope{
		Version:           EnvelopeVersion,
		SessionAttributes: attrs,
		Response:          wire,
	}
}

// EmptyResponseEnvelope acknowledges a request that needs no speech.
func EmptyResponseEnvelope() *ResponseEnvelope {
	return &ResponseEnvelope{
		Version:  EnvelopeVersion,
		Response: WireResponse{ShouldEndSession: true},
	}
}

func toWireSpeech(s OutputSpeech) WireSpeech {
	if s.Kind == SpeechSSML {
		return WireSpeech{Type: string(SpeechSSML), SSML: s.Text}
	}
	return WireSpeech{Type: string(SpeechPlainText), Text: s.Text}
}
