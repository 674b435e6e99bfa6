// Package notify carries transient banner notifications from the client core
// to whatever surface displays them. The sink is always injected; the core
// never owns a timer or a global banner.
package notify

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier receives one notification per reported outcome.
type Notifier interface {
	Notify(level Level, text string)
}

// Func adapts a plain function to the Notifier interface.
type Func func(level Level, text string)

func (f Func) Notify(level Level, text string) {
	f(level, text)
}

// Discard drops all notifications.
var Discard Notifier = Func(func(Level, string) {})
