// pkg/match/match.go

package match

import (
	"fmt"
	"regexp"
	"strings"

	cerr "github.com/cockroachdb/errors"
)

// Matcher evaluates a record's command text. Implementations are
// immutable configuration data, compiled once before filtering begins.
type Matcher interface {
	Match(command string) bool
	String() string
}

// Substring matches when the keyword appears anywhere in the command.
type Substring string

func (s Substring) Match(command string) bool {
	return strings.Contains(command, string(s))
}

func (s Substring) String() string {
	return fmt.Sprintf("keyword(%q)", string(s))
}

// Pattern matches when the compiled expression search-matches the command.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern compiles expr eagerly so that a bad pattern is rejected
// during configuration rather than mid-scan.
func NewPattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, cerr.Wrapf(err, "invalid filter pattern %q", expr)
	}
	return Pattern{re: re}, nil
}

func (p Pattern) Match(command string) bool {
	return p.re.MatchString(command)
}

func (p Pattern) String() string {
	return fmt.Sprintf("pattern(/%s/)", p.re.String())
}

// FilterSet is an ordered OR over keyword and pattern matchers. An
// empty set matches everything, which makes the deletion decision
// time-only.
type FilterSet struct {
	matchers []Matcher
}

// NewFilterSet compiles keywords and patterns into a FilterSet.
// Keywords are placed ahead of patterns so the cheap substring checks
// short-circuit the regex evaluation; logically the set is a single OR.
func NewFilterSet(keywords, patterns []string) (*FilterSet, error) {
	set := &FilterSet{matchers: make([]Matcher, 0, len(keywords)+len(patterns))}
	for _, kw := range keywords {
		set.matchers = append(set.matchers, Substring(kw))
	}
	for _, expr := range patterns {
		p, err := NewPattern(expr)
		if err != nil {
			return nil, err
		}
		set.matchers = append(set.matchers, p)
	}
	return set, nil
}

// Empty reports whether the set carries no matchers.
func (s *FilterSet) Empty() bool {
	return s == nil || len(s.matchers) == 0
}

// Matches reports whether the command text is selected by the set.
func (s *FilterSet) Matches(command string) bool {
	if s.Empty() {
		return true
	}
	for _, m := range s.matchers {
		if m.Match(command) {
			return true
		}
	}
	return false
}

// Describe lists the configured matchers for operator output.
func (s *FilterSet) Describe() []string {
	if s.Empty() {
		return nil
	}
	out := make([]string, 0, len(s.matchers))
	for _, m := range s.matchers {
		out = append(out, m.String())
	}
	return out
}
