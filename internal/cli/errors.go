package cli

import (
	"fmt"
	"strconv"
	"strings"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type badArgError struct {
	what  string
	value string
}

func (e badArgError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.what, e.value)
}

// parseIndex parses a checklist position as shown by `checklists lists list`.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, badArgError{what: "checklist index", value: s}
	}
	return n, nil
}

// parseItemID accepts "12" or "#12".
func parseItemID(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || n < 0 {
		return 0, badArgError{what: "item id", value: s}
	}
	return n, nil
}
