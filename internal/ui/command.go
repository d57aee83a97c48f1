package ui

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Completer returns the candidates for the word after args. The command
// line keeps the ones starting with the word being typed.
type Completer func(args []string) []string

// CommandMode manages command line input (`:command`)
type CommandMode struct {
	active    bool
	input     string
	cursorPos int // byte offset into input
	completer Completer
}

func NewCommandMode() *CommandMode {
	return &CommandMode{}
}

// SetCompleter installs the Tab completion source
func (c *CommandMode) SetCompleter(fn Completer) {
	c.completer = fn
}

// Start enters command mode
func (c *CommandMode) Start() {
	c.active = true
	c.input = ""
	c.cursorPos = 0
}

// Stop exits command mode
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// DeleteWordBackwards deletes the word before the cursor
func (c *CommandMode) DeleteWordBackwards() {
	if c.cursorPos == 0 {
		return
	}

	pos := c.cursorPos - 1
	for pos >= 0 && (c.input[pos] == ' ' || c.input[pos] == '\t') {
		pos--
	}
	for pos >= 0 && c.input[pos] != ' ' && c.input[pos] != '\t' {
		pos--
	}

	deleteStart := pos + 1
	c.input = c.input[:deleteStart] + c.input[c.cursorPos:]
	c.cursorPos = deleteStart
}

// HandleKey processes a key press in command mode
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyCtrlW:
		c.DeleteWordBackwards()
	case tcell.KeyTab:
		c.Complete()
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		c.Stop()
		return strings.TrimSpace(c.input), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.cursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(c.input[:c.cursorPos])
			c.input = c.input[:c.cursorPos-size] + c.input[c.cursorPos:]
			c.cursorPos -= size
		} else if c.input == "" {
			// Backspace on an empty line leaves command mode
			c.Stop()
			return "", true
		}
	case tcell.KeyDelete:
		if c.cursorPos < len(c.input) {
			_, size := utf8.DecodeRuneInString(c.input[c.cursorPos:])
			c.input = c.input[:c.cursorPos] + c.input[c.cursorPos+size:]
		}
	case tcell.KeyLeft:
		if c.cursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(c.input[:c.cursorPos])
			c.cursorPos -= size
		}
	case tcell.KeyRight:
		if c.cursorPos < len(c.input) {
			_, size := utf8.DecodeRuneInString(c.input[c.cursorPos:])
			c.cursorPos += size
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		c.cursorPos = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		c.cursorPos = len(c.input)
	case tcell.KeyCtrlU:
		c.input = c.input[c.cursorPos:]
		c.cursorPos = 0
	case tcell.KeyCtrlK:
		c.input = c.input[:c.cursorPos]
	case tcell.KeyRune:
		s := string(ev.Rune())
		c.input = c.input[:c.cursorPos] + s + c.input[c.cursorPos:]
		c.cursorPos += len(s)
	}

	return "", false
}

// Complete extends the word before the cursor to the longest prefix shared
// by all matching candidates. A unique match is followed by a space.
func (c *CommandMode) Complete() {
	if c.completer == nil {
		return
	}

	before := c.input[:c.cursorPos]
	args := strings.Fields(before)
	word := ""
	if len(args) > 0 && !strings.HasSuffix(before, " ") {
		word = args[len(args)-1]
		args = args[:len(args)-1]
	}

	var matches []string
	for _, candidate := range c.completer(args) {
		if strings.HasPrefix(candidate, word) {
			matches = append(matches, candidate)
		}
	}
	if len(matches) == 0 {
		return
	}
	sort.Strings(matches)

	completion := commonPrefix(matches)
	if len(matches) == 1 {
		completion += " "
	}
	insert := completion[len(word):]
	c.input = before + insert + c.input[c.cursorPos:]
	c.cursorPos += len(insert)
}

func commonPrefix(words []string) string {
	prefix := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

// GetInput returns the current command input
func (c *CommandMode) GetInput() string {
	return strings.TrimSpace(c.input)
}

// Render renders the command line
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}

	textStyle := screen.SearchTextStyle()
	cursorStyle := textStyle.Reverse(true)

	screen.FillLine(0, y, textStyle)
	x := screen.DrawString(0, y, ":", screen.SearchLabelStyle())
	x = screen.DrawString(x, y, c.input[:c.cursorPos], textStyle)

	rest := c.input[c.cursorPos:]
	if rest == "" {
		screen.SetCell(x, y, ' ', cursorStyle)
		return
	}
	r, size := utf8.DecodeRuneInString(rest)
	screen.SetCell(x, y, r, cursorStyle)
	screen.DrawString(x+RuneWidth(r), y, rest[size:], textStyle)
}
