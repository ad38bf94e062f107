package dialog

import "testing"

func TestHelpTextDefaultsToGreeting(t *testing.T) {
	greeting := HelpText("greeting")
	if greeting == "" {
		t.Fatal("greeting help must not be empty")
	}

	for _, topic := range []string{"", "unknown", "stage-9"} {
		if got := HelpText(topic); got != greeting {
			t.Fatalf("HelpText(%q) = %q, want greeting text", topic, got)
		}
	}
}

func TestHelpTextPerQuestion(t *testing.T) {
	seen := map[string]bool{}
	for _, topic := range []string{"greeting", "edit-delete-add-child", "add-new-child", HelpTopicJoke} {
		text := HelpText(topic)
		if text == "" {
			t.Fatalf("empty help for %q", topic)
		}
		if seen[text] {
			t.Fatalf("help for %q duplicates another topic", topic)
		}
		seen[text] = true
	}
}

func TestJokeHelpText(t *testing.T) {
	if got := JokeHelpText(0); got != HelpText(HelpTopicJoke) {
		t.Fatalf("stage 0 help = %q", got)
	}
	if got := JokeHelpText(1); got != "You can ask, who's there, or you can say exit." {
		t.Fatalf("stage 1 help = %q", got)
	}
	if got := JokeHelpText(2); got != "You can ask, who, or you can say exit." {
		t.Fatalf("stage 2 help = %q", got)
	}
	if got := JokeHelpText(7); got != HelpText(HelpTopicJoke) {
		t.Fatalf("unknown stage help = %q", got)
	}
}
