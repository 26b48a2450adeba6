package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// AddressingMode selects how identifiers are derived from file paths.
type AddressingMode int

const (
	// Relative identifiers are the absolute path with the root's parent
	// stripped, using forward slashes: "/photos/a.jpg" for root /srv/photos.
	// They are portable across hosts and are what the HTTP API hands out.
	Relative AddressingMode = iota
	// Absolute identifiers are host-native absolute paths.
	Absolute
)

// String returns the configuration name of the mode.
func (m AddressingMode) String() string {
	switch m {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// MarshalText encodes the mode by its configuration name.
func (m AddressingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts "relative"/"web" and "absolute"/"fx".
func (m *AddressingMode) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "relative", "web", "":
		*m = Relative
	case "absolute", "fx":
		*m = Absolute
	default:
		return fmt.Errorf("unknown addressing mode %q", b)
	}
	return nil
}

// IDScheme converts between files directly inside a root directory and
// their identifiers.
type IDScheme struct {
	root   string
	parent string
	mode   AddressingMode
}

// NewIDScheme builds a scheme for root. The root is made absolute but is
// not checked for existence here.
func NewIDScheme(root string, mode AddressingMode) (*IDScheme, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	return &IDScheme{
		root:   abs,
		parent: filepath.Dir(abs),
		mode:   mode,
	}, nil
}

// Root returns the absolute root directory.
func (s *IDScheme) Root() string {
	return s.root
}

// Mode returns the addressing mode.
func (s *IDScheme) Mode() AddressingMode {
	return s.mode
}

// ToIdentifier returns the identifier for file, which must be directly
// inside the root.
func (s *IDScheme) ToIdentifier(file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", file, err)
	}
	if !s.directChild(abs) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, file)
	}

	if s.mode == Absolute {
		return abs, nil
	}

	rel, err := filepath.Rel(s.parent, abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, file)
	}
	return "/" + filepath.ToSlash(rel), nil
}

// Resolve returns the physical path for id. Identifiers that would land
// anywhere other than directly inside the root are rejected.
func (s *IDScheme) Resolve(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrOutsideRoot)
	}

	var p string
	switch s.mode {
	case Absolute:
		if !filepath.IsAbs(id) {
			return "", fmt.Errorf("%w: %s is not absolute", ErrOutsideRoot, id)
		}
		p = filepath.Clean(id)
	default:
		// The leading slash is optional on input.
		rel := strings.TrimPrefix(id, "/")
		p = filepath.Join(s.parent, filepath.FromSlash(rel))
	}

	if !s.directChild(p) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, id)
	}
	return p, nil
}

func (s *IDScheme) directChild(abs string) bool {
	return abs != s.root && filepath.Dir(abs) == s.root
}
