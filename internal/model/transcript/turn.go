package transcript

import "time"

// Turn records one request/response exchange for audit/debug.
type Turn struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	RequestType string    `json:"requestType"`
	Intent      string    `json:"intent,omitempty"`
	Speech      string    `json:"speech,omitempty"`
	EndSession  bool      `json:"endSession"`
	CreatedAt   time.Time `json:"createdAt"`
}
