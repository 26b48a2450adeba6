package media

import (
	"path/filepath"
	"regexp"
	"strings"

	"media-catalog/internal/filesystem"
	"media-catalog/internal/mediatypes"
)

// Matcher decides whether a directory entry belongs in a listing: its
// lower-cased name must end in one of the selected suffixes and it must be a
// regular file.
type Matcher struct {
	pattern *regexp.Regexp // nil when no suffix is selected
	retry   filesystem.RetryConfig
}

// NewMatcher compiles the qualifier's type set. A qualifier with no
// listable types yields a matcher that rejects every name.
func NewMatcher(q Qualifier) *Matcher {
	return newMatcher(q, filesystem.DefaultRetryConfig())
}

func newMatcher(q Qualifier, retry filesystem.RetryConfig) *Matcher {
	var alternatives []string
	for _, t := range mediatypes.Listable {
		if !q.HasType(t) {
			continue
		}
		for _, suffix := range mediatypes.Suffixes[t] {
			alternatives = append(alternatives, regexp.QuoteMeta(suffix))
		}
	}

	m := &Matcher{retry: retry}
	if len(alternatives) > 0 {
		m.pattern = regexp.MustCompile(`\.(?:` + strings.Join(alternatives, "|") + `)$`)
	}
	return m
}

// MatchName applies only the suffix rule.
func (m *Matcher) MatchName(name string) bool {
	if m.pattern == nil {
		return false
	}
	return m.pattern.MatchString(strings.ToLower(name))
}

// Accept reports whether dir/name is a regular file with a selected suffix.
// Symlinks are followed.
func (m *Matcher) Accept(dir, name string) bool {
	if !m.MatchName(name) {
		return false
	}
	info, err := filesystem.StatWithRetry(filepath.Join(dir, name), m.retry)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Pattern returns the compiled expression, or "" when nothing can match.
func (m *Matcher) Pattern() string {
	if m.pattern == nil {
		return ""
	}
	return m.pattern.String()
}
