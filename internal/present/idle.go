package present

import "html"

// Idle renders the placeholder shown when no document is loaded.
type Idle interface {
	RenderIdle(prompt string) string
}

// IdleFunc adapts a function to the Idle interface.
type IdleFunc func(prompt string) string

func (f IdleFunc) RenderIdle(prompt string) string { return f(prompt) }

// Placeholder is the default Idle: a neutral box holding the prompt.
type Placeholder struct{}

func (Placeholder) RenderIdle(prompt string) string {
	return "<div class=\"idle\"><p class=\"idle-prompt\">" + html.EscapeString(prompt) + "</p></div>\n"
}
