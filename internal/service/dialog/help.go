package dialog

import "github.com/zhouzirui/babysitter/backend/internal/model/skill"

// HelpTopicJoke selects the general knock-knock help text.
const HelpTopicJoke = "joke"

var helpTexts = map[string]string{
	string(skill.QuestionGreeting): "You can say yes if you have already saved a child, or no if you have not. " +
		"You can also say exit.",
	string(skill.QuestionEditDeleteAddChild): "You can say edit or delete to change a saved child, " +
		"or new to add another child. You can also say exit.",
	string(skill.QuestionAddNewChild): "Say yes to add a new child, or you can say exit.",
	HelpTopicJoke: "Knock knock jokes are a fun call and response type of joke. " +
		"To start the joke, just ask by saying tell me a joke, or you can say exit.",
}

// HelpText returns the guidance for a question or topic. Unknown identifiers
// get the greeting guidance.
func HelpText(topic string) string {
	if text, ok := helpTexts[topic]; ok {
		return text
	}
	return helpTexts[string(skill.QuestionGreeting)]
}

// JokeHelpText returns the guidance for a knock-knock joke stage.
func JokeHelpText(stage int) string {
	switch stage {
	case 1:
		return "You can ask, who's there, or you can say exit."
	case 2:
		return "You can ask, who, or you can say exit."
	default:
		return helpTexts[HelpTopicJoke]
	}
}

// helpFor prefers the child-management question, then an active joke.
func helpFor(attrs skill.Attributes) string {
	if q, ok := attrs.LastQuestion(); ok {
		return HelpText(string(q))
	}
	if stage, ok := attrs.Stage(); ok {
		return JokeHelpText(stage)
	}
	return HelpText("")
}
