package main

import (
	"os"
	"strings"

	"checklists-cli/internal/cli"
)

func isListIndex(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isItemRef(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "#") && isListIndex(s[1:])
}

// directLookup returns the subcommand a bare positional token stands for.
func directLookup(s string) []string {
	switch {
	case isListIndex(s):
		return []string{"lists", "show"}
	case isItemRef(s):
		return []string{"items", "show"}
	}
	return nil
}

func rewriteDirectLookupArgs(argv []string) []string {
	// Convenience: `checklists 2` works like `checklists lists show 2` and
	// `checklists '#14'` like `checklists items show 14`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `checklists --dir ... 2`), so look for the first
	// positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":    true,
		"--format": true,
		"--locale": true,
	}
	boolFlags := map[string]bool{
		"--pretty":  true,
		"--verbose": true,
		"-v":        true,
	}

	insert := func(i int, sub []string) []string {
		out := make([]string, 0, len(argv)+len(sub))
		out = append(out, argv[:i]...)
		out = append(out, sub...)
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) {
				if sub := directLookup(argv[i+1]); sub != nil {
					return insert(i+1, sub)
				}
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			// --flag=value form
			if strings.Contains(a, "=") {
				continue
			}
			if boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
				continue
			}
			continue
		}

		// First positional token.
		if sub := directLookup(a); sub != nil {
			return insert(i, sub)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
