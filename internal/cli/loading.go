package cli

import "math/rand"

// Because comedy
var loadingMessages = []string{
	"Bending the spoon...",
	"Filtering morale...",
	"Have a good day.",
	"(Insert quarter)",
	"Are we there yet?",
	"Just count to 10",
	"Why so serious?",
	"Don't panic...",
	"Is this Windows?",
	"Granting wishes...",
	"git happens",
	"Dividing by zero...",
	"Spawn more Overlord!",
	"Proving P=NP...",
	"Twiddling thumbs...",
	"Winter is coming...",
	"Aw, snap! Not..",
	"What the what?",
	"format C: ...",
	"What's under there?",
	"Pushing pixels...",
	"Building a wall...",
	"Updating Updater...",
	"Work, work...",
	"Feeding unicorns...",
}

func loadingMessage() string {
	return loadingMessages[rand.Intn(len(loadingMessages))]
}
