package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/babysitter/backend/internal/model/joke"
)

// JokeWriter asks the chat model for a fresh knock-knock joke and falls back
// to the catalog whenever the model is unavailable or returns garbage.
type JokeWriter struct {
	chain    compose.Runnable[map[string]any, *schema.Message]
	fallback joke.Source
	avoid    []string
	logger   *zap.Logger
}

// NewJokeWriter compiles the joke chain. A nil chatModel yields a writer that
// always uses the fallback.
func NewJokeWriter(ctx context.Context, chatModel model.ChatModel, fallback *joke.Catalog, logger *zap.Logger) (*JokeWriter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &JokeWriter{
		logger: logger.Named("joke-writer"),
	}
	if fallback != nil {
		w.fallback = fallback
		for _, j := range fallback.List() {
			w.avoid = append(w.avoid, j.Setup)
		}
	}

	if chatModel == nil {
		return w, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(jokeSystemPrompt),
		schema.UserMessage(jokeUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile joke chain: %w", err)
	}

	w.chain = runnable
	return w, nil
}

// Enabled reports whether jokes come from the model.
func (w *JokeWriter) Enabled() bool {
	return w != nil && w.chain != nil
}

// Pick implements joke.Source.
func (w *JokeWriter) Pick(ctx context.Context) (joke.Joke, error) {
	if !w.Enabled() {
		return w.pickFallback(ctx)
	}

	resp, err := w.chain.Invoke(ctx, map[string]any{
		"avoid": strings.Join(w.avoid, ", "),
	})
	if err != nil {
		w.logger.Warn("joke generation failed, using catalog", zap.Error(err))
		return w.pickFallback(ctx)
	}

	j, err := parseJoke(resp.Content)
	if err != nil {
		w.logger.Warn("unusable joke from model, using catalog", zap.Error(err), zap.String("content", resp.Content))
		return w.pickFallback(ctx)
	}

	w.logger.Debug("generated joke", zap.String("setup", j.Setup))
	return j, nil
}

func (w *JokeWriter) pickFallback(ctx context.Context) (joke.Joke, error) {
	if w == nil || w.fallback == nil {
		return joke.Joke{}, joke.ErrEmptyCatalog
	}
	return w.fallback.Pick(ctx)
}

type jokePayload struct {
	Setup           string `json:"setup"`
	SpeechPunchline string `json:"speechPunchline"`
	CardPunchline   string `json:"cardPunchline"`
}

func parseJoke(content string) (joke.Joke, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return joke.Joke{}, errors.New("missing json object")
	}

	var payload jokePayload
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &payload); err != nil {
		return joke.Joke{}, err
	}

	j := joke.Joke{
		ID:              "generated-" + uuid.NewString(),
		Setup:           strings.TrimSpace(payload.Setup),
		SpeechPunchline: strings.TrimSpace(payload.SpeechPunchline),
		CardPunchline:   strings.TrimSpace(payload.CardPunchline),
	}
	if j.CardPunchline == "" {
		j.CardPunchline = stripSSML(j.SpeechPunchline)
	}
	if !j.Valid() {
		return joke.Joke{}, errors.New("incomplete joke")
	}
	return j, nil
}

// stripSSML removes markup such as <break time="0.3s" /> for card text.
func stripSSML(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

const jokeSystemPrompt = "You write short, family friendly knock-knock jokes for a children's voice assistant. " +
	"Return only one JSON object with the fields setup (the name said after who's there, one or two words), " +
	"speechPunchline (the line after <setup> who, SSML break tags allowed but no speak tag) and " +
	"cardPunchline (the same line as plain text). Do not output anything else."

const jokeUserPrompt = "Write a new knock-knock joke. Do not reuse these setups: {avoid}."
