package skill

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	skillmodel "github.com/zhouzirui/babysitter/backend/internal/model/skill"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
)

// ConsoleHandler lets a browser or CLI hold a conversation over a websocket.
// It plays the platform's part: it owns the session id and feeds returned
// attributes into the next request.
type ConsoleHandler struct {
	executor Executor
	appID    string
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewConsoleHandler creates the console. appID is stamped on every envelope.
func NewConsoleHandler(executor Executor, appID string, logger *zap.Logger) *ConsoleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleHandler{
		executor: executor,
		appID:    appID,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.Named("console"),
	}
}

// RegisterRoutes registers the console websocket.
func (h *ConsoleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/skill/ws", h.handleWebSocket)
}

// Inbound console message types.
const (
	consoleLaunch = "launch"
	consoleIntent = "intent"
	consoleEnd    = "end"
)

type inboundMessage struct {
	Type   string            `json:"type"`
	Intent string            `json:"intent,omitempty"`
	Slots  map[string]string `json:"slots,omitempty"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

type connectionState struct {
	sessionID  string
	isNew      bool
	attributes skillmodel.Attributes
}

func newConnectionState() *connectionState {
	return &connectionState{
		sessionID: "console." + uuid.NewString(),
		isNew:     true,
	}
}

// reset starts a fresh session after the previous one ended.
func (s *connectionState) reset() {
	*s = *newConnectionState()
}

func (h *ConsoleHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	state := newConnectionState()
	h.logger.Info("console connected", zap.String("sessionId", state.sessionID))

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go h.pingLoop(ctx, conn)

	h.send(conn, outgoingMessage{
		Type:      "connected",
		SessionID: state.sessionID,
		Timestamp: time.Now().Unix(),
	})

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("read error", zap.Error(err))
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		h.handleMessage(ctx, conn, state, msg)
	}
}

func (h *ConsoleHandler) handleMessage(ctx context.Context, conn *websocket.Conn, state *connectionState, msg inboundMessage) {
	env, err := h.buildEnvelope(state, msg)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}

	resp, err := h.executor.Execute(ctx, env)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}

	h.send(conn, outgoingMessage{
		Type:      "result",
		SessionID: state.sessionID,
		Data:      resp,
		Timestamp: time.Now().Unix(),
	})

	h.advance(state, msg, resp)
}

// buildEnvelope turns a console message into the envelope the platform would send.
func (h *ConsoleHandler) buildEnvelope(state *connectionState, msg inboundMessage) (skillmodel.RequestEnvelope, error) {
	env := skillmodel.RequestEnvelope{
		Version: skillmodel.EnvelopeVersion,
		Session: skillmodel.Session{
			ID:          state.sessionID,
			New:         state.isNew,
			Application: skillmodel.Application{ApplicationID: h.appID},
			Attributes:  state.attributes.Clone(),
		},
		Request: skillmodel.Request{
			RequestID: "console.request." + uuid.NewString(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	switch msg.Type {
	case consoleLaunch:
		env.Request.Type = skillmodel.RequestLaunch
	case consoleIntent:
		if msg.Intent == "" {
			return skillmodel.RequestEnvelope{}, fmt.Errorf("intent name is required")
		}
		env.Request.Type = skillmodel.RequestIntent
		env.Request.Intent = &skillmodel.Intent{Name: msg.Intent}
		if len(msg.Slots) > 0 {
			env.Request.Intent.Slots = make(map[string]skillmodel.Slot, len(msg.Slots))
			for name, value := range msg.Slots {
				env.Request.Intent.Slots[name] = skillmodel.Slot{Name: name, Value: value}
			}
		}
	case consoleEnd:
		env.Request.Type = skillmodel.RequestSessionEnded
		env.Request.Reason = "USER_INITIATED"
	default:
		return skillmodel.RequestEnvelope{}, fmt.Errorf("unsupported message type: %s", msg.Type)
	}
	return env, nil
}

// advance carries the response attributes into the next turn, or starts a new
// session when this one is over.
func (h *ConsoleHandler) advance(state *connectionState, msg inboundMessage, resp *skillmodel.ResponseEnvelope) {
	if msg.Type == consoleEnd || resp.Response.ShouldEndSession {
		state.reset()
		return
	}
	state.isNew = false
	state.attributes = resp.SessionAttributes.Clone()
}

func (h *ConsoleHandler) send(conn *websocket.Conn, msg outgoingMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Warn("write failed", zap.Error(err))
	}
}

func (h *ConsoleHandler) sendError(conn *websocket.Conn, message string) {
	h.send(conn, outgoingMessage{
		Type:      "error",
		Data:      map[string]string{"message": message},
		Timestamp: time.Now().Unix(),
	})
}

func (h *ConsoleHandler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second)); err != nil {
				return
			}
		}
	}
}
