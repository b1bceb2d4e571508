package session

import (
	"strings"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Action is a filter the user can apply to a session.
type Action int

const (
	// RemoveCommon drops stopwords from both documents.
	RemoveCommon Action = iota + 1
	// RemoveInfrequent keeps only the most frequent words of each document.
	RemoveInfrequent
	// RemoveUnshared keeps only words that occur in both documents.
	RemoveUnshared
)

var actionNames = map[Action]string{
	RemoveCommon:     "remove-common",
	RemoveInfrequent: "remove-infrequent",
	RemoveUnshared:   "remove-unshared",
}

var actionLabels = map[Action]string{
	RemoveCommon:     "remove standard common words",
	RemoveInfrequent: "remove infrequent words",
	RemoveUnshared:   "remove un-shared words",
}

// Actions returns every action in display order.
func Actions() []Action {
	return []Action{RemoveCommon, RemoveInfrequent, RemoveUnshared}
}

// ParseAction resolves an action name. Both the full name ("remove-common")
// and the short form ("common") are accepted, case-insensitively.
func ParseAction(s string) (Action, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, a := range Actions() {
		full := actionNames[a]
		if name == full || name == strings.TrimPrefix(full, "remove-") {
			return a, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidAction, "unknown action %q (valid: common, infrequent, unshared)", s)
}

// ParseActions resolves a list of action names, stopping at the first
// invalid one.
func ParseActions(names []string) ([]Action, error) {
	out := make([]Action, 0, len(names))
	for _, n := range names {
		a, err := ParseAction(n)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// Label is the human-facing name shown on buttons and in menus.
func (a Action) Label() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return "unknown action"
}

// MarshalText encodes the action by name.
func (a Action) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText decodes an action name accepted by [ParseAction].
func (a *Action) UnmarshalText(b []byte) error {
	parsed, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
