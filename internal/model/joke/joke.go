package joke

// Joke is a knock-knock joke split into the parts the dialog needs.
type Joke struct {
	ID              string `json:"id"`
	Setup           string `json:"setup"`
	SpeechPunchline string `json:"speechPunchline"`
	CardPunchline   string `json:"cardPunchline"`
}

// Valid reports whether every part needed to tell the joke is present.
func (j Joke) Valid() bool {
	return j.Setup != "" && j.SpeechPunchline != "" && j.CardPunchline != ""
}

// Seed provides the built-in jokes.
func Seed() []Joke {
	return []Joke{
		{
			ID:              "lettuce",
			Setup:           "Lettuce",
			SpeechPunchline: "Lettuce in, it's cold out here!",
			CardPunchline:   "Lettuce in, it's cold out here!",
		},
		{
			ID:              "boo",
			Setup:           "Boo",
			SpeechPunchline: "Don't cry <break time=\"0.3s\" /> it's only a joke!",
			CardPunchline:   "Don't cry, it's only a joke!",
		},
		{
			ID:              "olive",
			Setup:           "Olive",
			SpeechPunchline: "Olive you, and I don't care who knows it!",
			CardPunchline:   "Olive you, and I don't care who knows it!",
		},
		{
			ID:              "cow-says",
			Setup:           "Cow says",
			SpeechPunchline: "No silly <break time=\"0.2s\" /> a cow says moo!",
			CardPunchline:   "No silly, a cow says moo!",
		},
		{
			ID:              "nana",
			Setup:           "Nana",
			SpeechPunchline: "Nana your business!",
			CardPunchline:   "Nana your business!",
		},
	}
}
