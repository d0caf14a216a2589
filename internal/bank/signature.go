package bank

import "strings"

// Signature is the course/chapter/type selection addressing one
// independent progress slot. Empty fields mean "all".
type Signature struct {
	Course  string
	Chapter string
	Type    QType
}

// Matches reports whether a record passes the filter.
func (s Signature) Matches(r Record) bool {
	if s.Course != "" && r.Course != s.Course {
		return false
	}
	if s.Chapter != "" && r.Chapter != s.Chapter {
		return false
	}
	if s.Type != "" && r.Type != s.Type {
		return false
	}
	return true
}

// Key returns the stable map key for the signature. NUL-joined rather
// than "::"-joined so chapter names containing separators cannot collide.
func (s Signature) Key() string {
	return strings.Join([]string{s.Course, s.Chapter, string(s.Type)}, "\x00")
}

// String renders the signature for headers and logs.
func (s Signature) String() string {
	part := func(v string) string {
		if v == "" {
			return "全部"
		}
		return v
	}
	typeLabel := "全部"
	if s.Type != "" {
		typeLabel = s.Type.Label()
	}
	return part(s.Course) + " / " + part(s.Chapter) + " / " + typeLabel
}
