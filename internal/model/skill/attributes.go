package skill

import (
	"encoding/json"
	"math"
)

// Attribute keys carried between turns of one conversation.
const (
	KeyLastQuestion    = "lastQuestion"
	KeyStage           = "stage"
	KeySetup           = "setup"
	KeySpeechPunchline = "speechPunchline"
	KeyCardPunchline   = "cardPunchline"
)

// Question identifies the last question asked in the child-management dialog.
type Question string

const (
	QuestionGreeting           Question = "greeting"
	QuestionEditDeleteAddChild Question = "edit-delete-add-child"
	QuestionAddNewChild        Question = "add-new-child"
)

// Attributes is the per-session state mapping exchanged with the platform.
// Handlers treat it as read-only and derive new values with With.
type Attributes map[string]any

// Clone returns a shallow copy. Values are primitives so this is a full copy in practice.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// With returns a copy of a with key set to value.
func (a Attributes) With(key string, value any) Attributes {
	out := a.Clone()
	out[key] = value
	return out
}

// String returns the string stored under key. Non-string values count as absent.
func (a Attributes) String(key string) (string, bool) {
	raw, ok := a[key]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

// LastQuestion returns the stored lastQuestion, if any.
func (a Attributes) LastQuestion() (Question, bool) {
	s, ok := a.String(KeyLastQuestion)
	if !ok || s == "" {
		return "", false
	}
	return Question(s), true
}

// Stage returns the joke stage. Values decoded from JSON arrive as float64;
// anything that is not an integral number is reported as absent.
func (a Attributes) Stage() (int, bool) {
	raw, ok := a[KeyStage]
	if !ok {
		return 0, false
	}

	switch v := raw.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
