package dialog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zhouzirui/babysitter/backend/internal/model/joke"
	"github.com/zhouzirui/babysitter/backend/internal/model/skill"
	"github.com/zhouzirui/babysitter/backend/internal/service/dialog"
)

type fixedJokes struct {
	joke joke.Joke
	err  error
}

func (f fixedJokes) Pick(context.Context) (joke.Joke, error) {
	return f.joke, f.err
}

var lettuce = joke.Joke{
	ID:              "lettuce",
	Setup:           "Lettuce",
	SpeechPunchline: "Lettuce in, it's cold out here!",
	CardPunchline:   "Lettuce in!",
}

func newController() *dialog.Controller {
	return dialog.NewController(fixedJokes{joke: lettuce}, zap.NewNop())
}

func session(attrs skill.Attributes) skill.Session {
	return skill.Session{ID: "session-1", Attributes: attrs}
}

func intent(t *testing.T, c *dialog.Controller, name string, attrs skill.Attributes) dialog.Result {
	t.Helper()
	res, err := c.OnIntent(context.Background(), name, session(attrs))
	require.NoError(t, err)
	return res
}

func TestLaunchGreetsAndSetsGreeting(t *testing.T) {
	c := newController()

	res, err := c.OnLaunch(context.Background(), session(nil))
	require.NoError(t, err)

	assert.Equal(t, skill.ShapeAskWithCard, res.Response.Shape)
	assert.False(t, res.Response.ShouldEndSession)
	assert.Equal(t, "Welcome to Babysitter. Have you already saved a child?", res.Response.Speech.Text)
	assert.Equal(t, skill.SpeechPlainText, res.Response.Speech.Kind)
	require.NotNil(t, res.Response.Reprompt)
	assert.Equal(t, "Please say yes or no", res.Response.Reprompt.Text)
	require.NotNil(t, res.Response.Card)
	assert.Equal(t, "Babysitter", res.Response.Card.Title)

	q, ok := res.Attributes.LastQuestion()
	require.True(t, ok)
	assert.Equal(t, skill.QuestionGreeting, q)
}

func TestYesAfterGreeting(t *testing.T) {
	res := intent(t, newController(), dialog.IntentYes, skill.Attributes{skill.KeyLastQuestion: "greeting"})

	assert.Equal(t, skill.ShapeAskWithCard, res.Response.Shape)
	assert.Equal(t, "Would you like to edit, delete, or add a new child?", res.Response.Speech.Text)
	assert.Equal(t, "Please say edit, delete, or new", res.Response.Reprompt.Text)
	assert.Equal(t, "edit-delete-add-child", res.Attributes[skill.KeyLastQuestion])
}

func TestNoAfterGreeting(t *testing.T) {
	res := intent(t, newController(), dialog.IntentNo, skill.Attributes{skill.KeyLastQuestion: "greeting"})

	assert.Equal(t, skill.ShapeAskWithCard, res.Response.Shape)
	assert.Equal(t, "Would you like to add a new child?", res.Response.Speech.Text)
	assert.Equal(t, "add-new-child", res.Attributes[skill.KeyLastQuestion])
}

func TestYesNoOutOfContext(t *testing.T) {
	cases := []struct {
		name  string
		attrs skill.Attributes
	}{
		{name: "no attributes", attrs: nil},
		{name: "after edit question", attrs: skill.Attributes{skill.KeyLastQuestion: "edit-delete-add-child"}},
		{name: "after add question", attrs: skill.Attributes{skill.KeyLastQuestion: "add-new-child"}},
		{name: "unknown question", attrs: skill.Attributes{skill.KeyLastQuestion: "bogus"}},
	}

	for _, tc := range cases {
		for _, name := range []string{dialog.IntentYes, dialog.IntentNo} {
			t.Run(tc.name+"/"+name, func(t *testing.T) {
				res := intent(t, newController(), name, tc.attrs)

				assert.Equal(t, skill.ShapeAskWithCard, res.Response.Shape)
				assert.NotEmpty(t, res.Response.Speech.Text)
				assert.Contains(t, res.Response.Speech.Text, "wasn't expecting")
				require.NotNil(t, res.Response.Reprompt)
				assert.NotEmpty(t, res.Response.Reprompt.Text)
				assert.Equal(t, len(tc.attrs), len(res.Attributes))
				assert.Equal(t, tc.attrs[skill.KeyLastQuestion], res.Attributes[skill.KeyLastQuestion])
			})
		}
	}
}

func TestHelpByLastQuestion(t *testing.T) {
	c := newController()

	res := intent(t, c, dialog.IntentHelp, skill.Attributes{skill.KeyLastQuestion: "add-new-child"})
	assert.Equal(t, skill.ShapeAsk, res.Response.Shape)
	assert.Equal(t, "Say yes to add a new child, or you can say exit.", res.Response.Speech.Text)
	assert.Equal(t, res.Response.Speech.Text, res.Response.Reprompt.Text)
	assert.Equal(t, "add-new-child", res.Attributes[skill.KeyLastQuestion])

	res = intent(t, c, dialog.IntentHelp, nil)
	assert.Equal(t, dialog.HelpText("greeting"), res.Response.Speech.Text)

	res = intent(t, c, dialog.IntentHelp, skill.Attributes{skill.KeyStage: 2})
	assert.Equal(t, dialog.JokeHelpText(2), res.Response.Speech.Text)
}

func TestStopAndCancelSayGoodbye(t *testing.T) {
	states := []skill.Attributes{
		nil,
		{skill.KeyLastQuestion: "greeting"},
		{skill.KeyStage: 1, skill.KeySetup: "Lettuce"},
		{skill.KeyStage: 2, skill.KeyLastQuestion: "add-new-child"},
	}

	for _, name := range []string{dialog.IntentStop, dialog.IntentCancel} {
		for _, attrs := range states {
			res := intent(t, newController(), name, attrs)
			assert.Equal(t, skill.ShapeTell, res.Response.Shape)
			assert.True(t, res.Response.ShouldEndSession)
			assert.Equal(t, "Goodbye", res.Response.Speech.Text)
			assert.Nil(t, res.Response.Reprompt)
		}
	}
}

func TestUnknownIntent(t *testing.T) {
	_, err := newController().OnIntent(context.Background(), "OrderPizzaIntent", session(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, dialog.ErrUnknownIntent))
	assert.Contains(t, err.Error(), "OrderPizzaIntent")
}

func TestIntentsListsDispatchTable(t *testing.T) {
	names := newController().Intents()
	assert.Contains(t, names, dialog.IntentYes)
	assert.Contains(t, names, dialog.IntentWhosThere)
	assert.Contains(t, names, dialog.IntentSetupNameWho)
	assert.Len(t, names, 8)
}

func TestHandlersDoNotMutateInput(t *testing.T) {
	c := newController()
	in := skill.Attributes{skill.KeyLastQuestion: "greeting", skill.KeyStage: 1, skill.KeySetup: "Lettuce"}
	snapshot := in.Clone()

	for _, name := range c.Intents() {
		_, err := c.OnIntent(context.Background(), name, session(in))
		require.NoError(t, err)
		assert.Equal(t, snapshot, in, "intent %s mutated its input", name)
	}
	_, err := c.OnLaunch(context.Background(), session(in))
	require.NoError(t, err)
	assert.Equal(t, snapshot, in)
}
