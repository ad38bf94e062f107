package dialog

import (
	"context"

	"go.uber.org/zap"

	"github.com/zhouzirui/babysitter/backend/internal/model/skill"
)

// handleTellMeAJoke loads a joke into the session and opens with "Knock knock!".
func (c *Controller) handleTellMeAJoke(ctx context.Context, attrs skill.Attributes) (Result, error) {
	if c.jokes == nil {
		return jokeUnavailable(attrs), nil
	}

	j, err := c.jokes.Pick(ctx)
	if err != nil || !j.Valid() {
		c.logger.Warn("joke source failed", zap.Error(err), zap.String("jokeId", j.ID))
		return jokeUnavailable(attrs), nil
	}

	next := attrs.Clone()
	next[skill.KeyStage] = 1
	next[skill.KeySetup] = j.Setup
	next[skill.KeySpeechPunchline] = j.SpeechPunchline
	next[skill.KeyCardPunchline] = j.CardPunchline

	return Result{
		Response:   skill.Ask(skill.PlainText(knockKnockText), skill.PlainText(askWhosThereText)),
		Attributes: next,
	}, nil
}

// handleWhosThere answers "Who's there?" with the setup line.
func (c *Controller) handleWhosThere(_ context.Context, attrs skill.Attributes) (Result, error) {
	stage, ok := attrs.Stage()
	if !ok {
		return Result{
			Response:   skill.Ask(skill.SSML(jokeRetrieveFailText), skill.SSML(jokeRestartText)),
			Attributes: attrs.Clone(),
		}, nil
	}

	if stage != 1 {
		return Result{
			Response:   skill.Ask(skill.SSML(wrongWhosThereSpeech), skill.SSML(askWhosThereText)),
			Attributes: attrs.With(skill.KeyStage, 1),
		}, nil
	}

	setup, ok := attrs.String(skill.KeySetup)
	if !ok || setup == "" {
		return jokeUnavailable(attrs), nil
	}
	return Result{
		Response:   skill.Ask(skill.SSML(setup), skill.SSML("You can ask, "+setup+" who?")),
		Attributes: attrs.With(skill.KeyStage, 2),
	}, nil
}

// handleSetupNameWho delivers the punchline after "<setup> who?".
func (c *Controller) handleSetupNameWho(_ context.Context, attrs skill.Attributes) (Result, error) {
	stage, ok := attrs.Stage()
	if !ok {
		return jokeUnavailableWithCard(attrs), nil
	}

	if stage != 2 {
		return Result{
			Response: skill.AskWithCard(
				skill.SSML(wrongWhoSpeech),
				skill.PlainText(wrongWhoReprompt),
				wiseGuyCardTitle,
				wrongWhoCard,
			),
			Attributes: attrs.With(skill.KeyStage, 1),
		}, nil
	}

	speech, okSpeech := attrs.String(skill.KeySpeechPunchline)
	card, okCard := attrs.String(skill.KeyCardPunchline)
	if !okSpeech || !okCard || speech == "" || card == "" {
		return jokeUnavailableWithCard(attrs), nil
	}
	return Result{
		Response:   skill.TellWithCard(skill.SSML(speech), wiseGuyCardTitle, card),
		Attributes: attrs.Clone(),
	}, nil
}

func jokeUnavailable(attrs skill.Attributes) Result {
	return Result{
		Response:   skill.Ask(skill.PlainText(jokeRetrieveFailText), skill.PlainText(jokeRestartText)),
		Attributes: attrs.Clone(),
	}
}

func jokeUnavailableWithCard(attrs skill.Attributes) Result {
	return Result{
		Response: skill.AskWithCard(
			skill.PlainText(jokeRetrieveFailText),
			skill.PlainText(jokeRestartText),
			wiseGuyCardTitle,
			jokeRetrieveFailText,
		),
		Attributes: attrs.Clone(),
	}
}
