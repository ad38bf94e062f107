package skill

// SpeechKind tells the platform how to render an utterance.
type SpeechKind string

const (
	SpeechPlainText SpeechKind = "PlainText"
	SpeechSSML      SpeechKind = "SSML"
)

// Shape records which of the four response builders produced a Response.
type Shape string

const (
	ShapeAsk          Shape = "ask"
	ShapeAskWithCard  Shape = "askWithCard"
	ShapeTell         Shape = "tell"
	ShapeTellWithCard Shape = "tellWithCard"
)

// OutputSpeech is a single utterance.
type OutputSpeech struct {
	Kind SpeechKind `json:"kind"`
	Text string     `json:"text"`
}

// PlainText builds an unmarked utterance.
func PlainText(text string) OutputSpeech {
	return OutputSpeech{Kind: SpeechPlainText, Text: text}
}

// SSML wraps text in <speak> tags.
func SSML(text string) OutputSpeech {
	return OutputSpeech{Kind: SpeechSSML, Text: "<speak>" + text + "</speak>"}
}

// Card is the companion-app view of a response.
type Card struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Response is what a dialog handler produces for one turn.
type Response struct {
	Shape            Shape         `json:"shape"`
	Speech           OutputSpeech  `json:"speech"`
	Reprompt         *OutputSpeech `json:"reprompt,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

// Ask keeps the session open and waits for the user.
func Ask(speech, reprompt OutputSpeech) Response {
	return Response{
		Shape:    ShapeAsk,
		Speech:   speech,
		Reprompt: &reprompt,
	}
}

// AskWithCard is Ask plus a card.
func AskWithCard(speech, reprompt OutputSpeech, cardTitle, cardText string) Response {
	return Response{
		Shape:    ShapeAskWithCard,
		Speech:   speech,
		Reprompt: &reprompt,
		Card:     &Card{Title: cardTitle, Content: cardText},
	}
}

// Tell speaks and ends the session.
func Tell(speech OutputSpeech) Response {
	return Response{
		Shape:            ShapeTell,
		Speech:           speech,
		ShouldEndSession: true,
	}
}

// TellWithCard is Tell plus a card.
func TellWithCard(speech OutputSpeech, cardTitle, cardText string) Response {
	return Response{
		Shape:            ShapeTellWithCard,
		Speech:           speech,
		Card:             &Card{Title: cardTitle, Content: cardText},
		ShouldEndSession: true,
	}
}
