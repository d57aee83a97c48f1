package ui

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Search is the incremental jump-to-item prompt (`/`). Item ids are matched
// fuzzily and ranked by edit distance, best first.
type Search struct {
	active  bool
	query   string
	ids     []string
	results []string
	current int
}

// NewSearch creates an inactive search prompt
func NewSearch() *Search {
	return &Search{}
}

// Start opens the prompt over the given ids
func (s *Search) Start(ids []string) {
	s.active = true
	s.query = ""
	s.ids = ids
	s.results = nil
	s.current = 0
}

// Stop closes the prompt
func (s *Search) Stop() {
	s.active = false
}

// IsActive returns whether the prompt is open
func (s *Search) IsActive() bool {
	return s.active
}

// Query returns the text typed so far
func (s *Search) Query() string {
	return s.query
}

// Results returns the matching ids, best match first
func (s *Search) Results() []string {
	return s.results
}

// Current returns the selected match
func (s *Search) Current() (string, bool) {
	if len(s.results) == 0 {
		return "", false
	}
	return s.results[s.current], true
}

// Next cycles to the following match
func (s *Search) Next() {
	if len(s.results) > 0 {
		s.current = (s.current + 1) % len(s.results)
	}
}

// Prev cycles to the preceding match
func (s *Search) Prev() {
	if len(s.results) > 0 {
		s.current = (s.current - 1 + len(s.results)) % len(s.results)
	}
}

// HandleKey processes a key while the prompt is open. It returns the chosen
// id and done=true on Enter; Escape closes the prompt with no choice.
func (s *Search) HandleKey(ev *tcell.EventKey) (id string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.Stop()
		return "", true
	case tcell.KeyEnter:
		s.Stop()
		id, _ = s.Current()
		return id, true
	case tcell.KeyTab, tcell.KeyDown:
		s.Next()
	case tcell.KeyBacktab, tcell.KeyUp:
		s.Prev()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if s.query == "" {
			s.Stop()
			return "", true
		}
		_, size := utf8.DecodeLastRuneInString(s.query)
		s.query = s.query[:len(s.query)-size]
		s.update()
	case tcell.KeyCtrlU:
		s.query = ""
		s.update()
	case tcell.KeyRune:
		s.query += string(ev.Rune())
		s.update()
	}
	return "", false
}

func (s *Search) update() {
	s.current = 0
	s.results = nil
	if s.query == "" {
		return
	}

	ranks := fuzzy.RankFindFold(s.query, s.ids)
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	for _, r := range ranks {
		s.results = append(s.results, r.Target)
	}
}

// Render draws the prompt on line y
func (s *Search) Render(screen *Screen, y int) {
	if !s.active {
		return
	}

	screen.FillLine(0, y, DefaultStyle())
	x := screen.DrawString(0, y, "/", screen.SearchLabelStyle())
	x = screen.DrawString(x, y, s.query, screen.SearchTextStyle())
	screen.SetCell(x, y, ' ', screen.SearchTextStyle().Reverse(true))

	var info string
	switch {
	case s.query == "":
		return
	case len(s.results) == 0:
		info = "no matches"
	default:
		info = fmt.Sprintf("%s (%d of %d)", s.results[s.current], s.current+1, len(s.results))
	}
	screen.DrawString(screen.GetWidth()-StringWidth(info)-1, y, info, screen.SearchLabelStyle())
}
