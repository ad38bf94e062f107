package dialog

const (
	babysitterCardTitle = "Babysitter"
	wiseGuyCardTitle    = "Wise Guy"

	goodbyeText = "Goodbye"

	greetingText        = "Welcome to Babysitter. Have you already saved a child?"
	greetingReprompt    = "Please say yes or no"
	editDeleteAddText   = "Would you like to edit, delete, or add a new child?"
	editDeleteAddPrompt = "Please say edit, delete, or new"
	addNewChildText     = "Would you like to add a new child?"
	addNewChildReprompt = "Please say yes or no"
	outOfContextPrefix  = "Sorry, I wasn't expecting that answer. "

	knockKnockText       = "Knock knock!"
	askWhosThereText     = "You can ask, who's there."
	jokeRetrieveFailText = "Sorry, I couldn't correctly retrieve the joke. You can say, tell me a joke"
	jokeRestartText      = "You can say, tell me a joke"
	wrongWhosThereSpeech = "That's not how knock knock jokes work! <break time=\"0.3s\" /> knock knock"
	wrongWhoSpeech       = "That's not how knock knock jokes work! <break time=\"0.3s\" /> Knock knock!"
	wrongWhoCard         = "That's not how knock knock jokes work! Knock knock!"
	wrongWhoReprompt     = "You can ask who's there."
)
