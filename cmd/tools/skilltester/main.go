package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/zhouzirui/babysitter/backend/internal/config"
	"github.com/zhouzirui/babysitter/backend/internal/model/joke"
	skillmodel "github.com/zhouzirui/babysitter/backend/internal/model/skill"
	"github.com/zhouzirui/babysitter/backend/internal/service/dialog"
	"github.com/zhouzirui/babysitter/backend/internal/service/skill"
)

// Preset conversations. Each step is "launch", "end" or an intent name.
var scripts = map[string][]string{
	"joke":     {"launch", dialog.IntentTellMeAJoke, dialog.IntentWhosThere, dialog.IntentSetupNameWho},
	"greeting": {"launch", dialog.IntentYes, dialog.IntentHelp, dialog.IntentStop},
	"wrong":    {"launch", dialog.IntentTellMeAJoke, dialog.IntentSetupNameWho, dialog.IntentWhosThere, dialog.IntentSetupNameWho},
}

type runner interface {
	run(ctx context.Context, env skillmodel.RequestEnvelope) (*skillmodel.ResponseEnvelope, error)
}

type localRunner struct {
	executor *skill.Executor
}

func (r localRunner) run(ctx context.Context, env skillmodel.RequestEnvelope) (*skillmodel.ResponseEnvelope, error) {
	return r.executor.Execute(ctx, env)
}

type remoteRunner struct {
	url    string
	client *http.Client
}

func (r remoteRunner) run(ctx context.Context, env skillmodel.RequestEnvelope) (*skillmodel.ResponseEnvelope, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, e.Error)
	}

	var out skillmodel.ResponseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] no .env file, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	scriptName := flag.String("script", "joke", "preset conversation: joke, greeting or wrong")
	steps := flag.String("steps", "", "comma separated steps, overrides -script (launch, end or an intent name)")
	url := flag.String("url", "", "skill endpoint of a running server, empty runs in process")
	session := flag.String("session", "", "session id, generated when empty")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")

	flag.Parse()

	plan := scripts[*scriptName]
	if *steps != "" {
		plan = strings.Split(*steps, ",")
	}
	if len(plan) == 0 {
		flag.Usage()
		log.Fatalf("unknown script %q", *scriptName)
	}

	sessionID := *session
	if sessionID == "" {
		sessionID = "tester." + uuid.NewString()
	}

	var r runner
	if *url != "" {
		r = remoteRunner{url: *url, client: &http.Client{Timeout: *timeout}}
	} else {
		controller := dialog.NewController(joke.NewCatalog(joke.Seed()), nil)
		r = localRunner{executor: skill.NewExecutor(cfg.Skill.ApplicationID, controller, nil, nil)}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := converse(ctx, r, cfg.Skill.ApplicationID, sessionID, plan); err != nil {
		log.Printf("conversation failed: %v", err)
		os.Exit(1)
	}
}

func converse(ctx context.Context, r runner, appID, sessionID string, plan []string) error {
	attrs := skillmodel.Attributes{}
	isNew := true

	for i, step := range plan {
		step = strings.TrimSpace(step)
		env := skillmodel.RequestEnvelope{
			Version: skillmodel.EnvelopeVersion,
			Session: skillmodel.Session{
				ID:          sessionID,
				New:         isNew,
				Application: skillmodel.Application{ApplicationID: appID},
				Attributes:  attrs,
			},
			Request: skillmodel.Request{
				RequestID: fmt.Sprintf("tester.request.%d", i),
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			},
		}

		switch step {
		case "launch":
			env.Request.Type = skillmodel.RequestLaunch
		case "end":
			env.Request.Type = skillmodel.RequestSessionEnded
			env.Request.Reason = "USER_INITIATED"
		default:
			env.Request.Type = skillmodel.RequestIntent
			env.Request.Intent = &skillmodel.Intent{Name: step}
		}

		resp, err := r.run(ctx, env)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}

		log.Printf("> %s", step)
		if speech := resp.Response.OutputSpeech; speech != nil {
			text := speech.Text
			if speech.Type == string(skillmodel.SpeechSSML) {
				text = speech.SSML
			}
			log.Printf("< %s", text)
		}
		if card := resp.Response.Card; card != nil {
			log.Printf("  [card %s] %s", card.Title, card.Content)
		}

		if resp.Response.ShouldEndSession || step == "end" {
			log.Printf("session ended")
			return nil
		}
		attrs = resp.SessionAttributes
		isNew = false
	}
	return nil
}
