package qrcontent

// Action is a follow-up a reader can offer for decoded content.
type Action string

const (
	ActionOpenURL Action = "open_url"
	ActionCall    Action = "call"
	ActionEmail   Action = "email"
	ActionCopy    Action = "copy"
)

// Actions returns the affordances for a decoded payload of type c.
// Copy is always last.
func Actions(c ContentType) []Action {
	switch c {
	case URL:
		return []Action{ActionOpenURL, ActionCopy}
	case Phone:
		return []Action{ActionCall, ActionCopy}
	case Email:
		return []Action{ActionEmail, ActionCopy}
	}
	return []Action{ActionCopy}
}
