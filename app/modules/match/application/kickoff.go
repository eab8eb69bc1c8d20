package matchservice

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/br"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var compactHour = regexp.MustCompile(`\b(\d{1,2})(\d{2})(am|pm)\b`)

var layouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"02/01/2006 15:04",
}

// KickoffParser turns free-text kickoff times into instants. It understands
// English and Brazilian Portuguese phrasing as well as a few fixed layouts.
type KickoffParser struct {
	w   *when.Parser
	loc *time.Location
}

// NewKickoffParser returns a parser that resolves times in loc.
func NewKickoffParser(loc *time.Location) *KickoffParser {
	if loc == nil {
		loc = time.Local
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(br.All...)
	w.Add(common.All...)
	return &KickoffParser{w: w, loc: loc}
}

// Parse resolves input relative to now. The result must lie in the future.
func (p *KickoffParser) Parse(input string, now time.Time) (time.Time, error) {
	text := strings.ToLower(strings.TrimSpace(input))
	if text == "" {
		return time.Time{}, ErrEmptyKickoff
	}
	now = now.In(p.loc)

	kickoff, ok := p.parseLayout(text)
	if !ok {
		text = compactHour.ReplaceAllString(text, "$1:$2 $3")
		r, err := p.w.Parse(text, now)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: %v", ErrUnrecognizedTime, input, err)
		}
		if r == nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognizedTime, input)
		}
		kickoff = r.Time.In(p.loc)
	}

	kickoff = kickoff.Truncate(time.Minute)
	if !kickoff.After(now.Truncate(time.Minute)) {
		return time.Time{}, fmt.Errorf("%w (parsed %s)", ErrKickoffInPast, kickoff.Format(time.RFC3339))
	}
	return kickoff, nil
}

func (p *KickoffParser) parseLayout(text string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, strings.ToUpper(text), p.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
