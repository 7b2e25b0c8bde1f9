package preview

// Action is a navigator or moderation command triggered by a key press.
type Action string

const (
	ActionPrev    Action = "prev"
	ActionNext    Action = "next"
	ActionApprove Action = "approve"
	ActionDecline Action = "decline"
	ActionClose   Action = "close"
)

// keymap is the moderation shortcut contract: arrows browse, a/d
// decide, Escape dismisses.
var keymap = map[string]Action{
	"ArrowLeft":  ActionPrev,
	"ArrowRight": ActionNext,
	"a":          ActionApprove,
	"d":          ActionDecline,
	"Escape":     ActionClose,
}

// ActionForKey maps a key press to its action. Keys are ignored while
// focus sits in a text input, so typing a search never fires a
// moderation shortcut.
func ActionForKey(key string, inTextInput bool) (Action, bool) {
	if inTextInput {
		return "", false
	}
	action, ok := keymap[key]
	return action, ok
}
