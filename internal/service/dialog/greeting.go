package dialog

import (
	"context"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/zhouzirui/babysitter/backend/internal/model/skill"
)

const (
	eventYes = "yes"
	eventNo  = "no"

	// stateNoQuestion stands in for an absent lastQuestion.
	stateNoQuestion = "none"
)

// questionEvents are the only answers the child-management dialog understands.
var questionEvents = fsm.Events{
	{Name: eventYes, Src: []string{string(skill.QuestionGreeting)}, Dst: string(skill.QuestionEditDeleteAddChild)},
	{Name: eventNo, Src: []string{string(skill.QuestionGreeting)}, Dst: string(skill.QuestionAddNewChild)},
}

type questionPrompt struct {
	speech   string
	reprompt string
}

var questionPrompts = map[skill.Question]questionPrompt{
	skill.QuestionGreeting:           {speech: greetingText, reprompt: greetingReprompt},
	skill.QuestionEditDeleteAddChild: {speech: editDeleteAddText, reprompt: editDeleteAddPrompt},
	skill.QuestionAddNewChild:        {speech: addNewChildText, reprompt: addNewChildReprompt},
}

func (c *Controller) greet(_ context.Context, attrs skill.Attributes) (Result, error) {
	return Result{
		Response:   askQuestion(skill.QuestionGreeting),
		Attributes: attrs.With(skill.KeyLastQuestion, string(skill.QuestionGreeting)),
	}, nil
}

func (c *Controller) handleYes(ctx context.Context, attrs skill.Attributes) (Result, error) {
	return c.answer(ctx, attrs, eventYes)
}

func (c *Controller) handleNo(ctx context.Context, attrs skill.Attributes) (Result, error) {
	return c.answer(ctx, attrs, eventNo)
}

// answer advances lastQuestion by event. Answers the current question does not
// accept leave the attributes untouched and get the out-of-context reply.
func (c *Controller) answer(ctx context.Context, attrs skill.Attributes, event string) (Result, error) {
	current, _ := attrs.LastQuestion()

	next, ok := c.nextQuestion(ctx, current, event)
	if !ok {
		return Result{
			Response:   outOfContext(current),
			Attributes: attrs.Clone(),
		}, nil
	}

	return Result{
		Response:   askQuestion(next),
		Attributes: attrs.With(skill.KeyLastQuestion, string(next)),
	}, nil
}

func (c *Controller) nextQuestion(ctx context.Context, current skill.Question, event string) (skill.Question, bool) {
	initial := string(current)
	if initial == "" {
		initial = stateNoQuestion
	}

	machine := fsm.NewFSM(initial, questionEvents, fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			c.logger.Debug("question transition",
				zap.String("event", e.Event),
				zap.String("from", e.Src),
				zap.String("to", e.Dst),
			)
		},
	})

	if err := machine.Event(ctx, event); err != nil {
		c.logger.Debug("answer out of context",
			zap.String("event", event),
			zap.String("lastQuestion", initial),
			zap.Error(err),
		)
		return current, false
	}
	return skill.Question(machine.Current()), true
}

func askQuestion(q skill.Question) skill.Response {
	p := questionPrompts[q]
	return skill.AskWithCard(skill.PlainText(p.speech), skill.PlainText(p.reprompt), babysitterCardTitle, p.speech)
}

func outOfContext(current skill.Question) skill.Response {
	help := HelpText(string(current))
	speech := outOfContextPrefix + help
	return skill.AskWithCard(skill.PlainText(speech), skill.PlainText(help), babysitterCardTitle, speech)
}
