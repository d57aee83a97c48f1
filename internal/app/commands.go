package app

import (
	"strings"

	"github.com/pstuifzand/sortable-tree/internal/config"
)

var commandNames = []string{"debug", "help", "quit", "reset", "set"}

// completeCommand offers command names, then the flag settings after set,
// then their values.
func completeCommand(args []string) []string {
	switch {
	case len(args) == 0:
		return commandNames
	case args[0] != "set":
		return nil
	case len(args) == 1:
		return []string{config.KeyCollapsible, config.KeyIndicator, config.KeyRemovable}
	case len(args) == 2:
		return []string{"false", "true"}
	default:
		return nil
	}
}

// parseCommand splits a command line into words. Single and double quotes
// group words; a backslash escapes the next character.
func parseCommand(cmd string) []string {
	var (
		parts   []string
		current strings.Builder
		quote   rune
		escaped bool
		inWord  bool
	)

	for _, r := range cmd {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}

	return parts
}
