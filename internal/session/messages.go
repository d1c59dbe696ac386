package session

// Keyboard tells the transport which suggested-reply keyboard to attach.
// KeyboardKeep leaves whatever the user currently sees untouched, which is
// how re-prompts avoid flicker.
type Keyboard int

const (
	KeyboardKeep Keyboard = iota
	KeyboardMain
	KeyboardCategories
	KeyboardStats
	KeyboardRemove
)

// Message is one outbound reply. A single inbound message may produce
// several, e.g. a confirmation followed by the refreshed monthly report.
type Message struct {
	Text     string
	Keyboard Keyboard
}
