package momentum

import "fmt"

// Tone indicates how strongly a recovery message should land.
type Tone string

// Possible tone values
const (
	ToneGentle     Tone = "gentle"
	ToneSupportive Tone = "supportive"
)

// Message is the encouragement shown to a returning learner.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tone  Tone   `json:"tone"`
}

// MessageFor grades the recovery messaging by how many consecutive days
// were missed. Short gaps get a light touch, longer ones an explicit
// invitation back.
func MessageFor(missedDays int) Message {
	switch {
	case missedDays <= 1:
		return Message{
			Title: "One day off? No worries!",
			Body:  "Everyone needs a break. Ready to get back on track tomorrow?",
			Tone:  ToneGentle,
		}
	case missedDays == 2:
		return Message{
			Title: "Two-day break happens!",
			Body:  "Life gets busy. A quick catch-up session will get you back in the flow.",
			Tone:  ToneGentle,
		}
	case missedDays <= 7:
		return Message{
			Title: "Welcome back! We missed you.",
			Body: fmt.Sprintf(
				"It's been %d days. Don't worry - we've created a special recovery session to get you back on track.",
				missedDays,
			),
			Tone: ToneSupportive,
		}
	default:
		return Message{
			Title: "Time for a fresh start!",
			Body: fmt.Sprintf(
				"It's been %d days. The best time to restart was yesterday. The second best time is now.",
				missedDays,
			),
			Tone: ToneSupportive,
		}
	}
}
