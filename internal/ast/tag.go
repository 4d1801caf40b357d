package ast

import (
	"errors"
	"fmt"
	"strings"
)

// TagKind classifies a bracket tag.
type TagKind uint8

const (
	// TagOperation is the default kind: `[Lin:MatMul]`.
	TagOperation TagKind = iota
	// TagComplexity is a big-O annotation: `[O(N*D)]`.
	TagComplexity
	// TagDecorator is a recognized decorator: `[Cached:TTL:60]`.
	TagDecorator
	// TagHTTPRoute is a method+path annotation: `[GET/users]`.
	TagHTTPRoute
	// TagCustom is an explicitly custom tag. The parser never produces
	// this kind; it appears when a decorator downgrades or a caller
	// constructs one directly.
	TagCustom
)

var tagKindNames = [...]string{
	TagOperation:  "operation",
	TagComplexity: "complexity",
	TagDecorator:  "decorator",
	TagHTTPRoute:  "http_route",
	TagCustom:     "custom",
}

func (k TagKind) String() string {
	if int(k) < len(tagKindNames) {
		return tagKindNames[k]
	}
	return "TagKind(?)"
}

// httpMethods is the closed, case-sensitive set of route methods.
var httpMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"DELETE": true,
	"PATCH":  true,
}

// IsHTTPMethod reports whether s is one of the recognized route methods.
// Matching is case-sensitive: `get` is not a method.
func IsHTTPMethod(s string) bool {
	return httpMethods[s]
}

// HTTPMethods returns the recognized methods in a stable order.
func HTTPMethods() []string {
	return []string{"GET", "POST", "PUT", "DELETE", "PATCH"}
}

// IsComplexityNotation reports whether s is a well-formed O(...) form:
// the O( prefix, a non-empty body, and balanced parentheses closing at
// the final character.
func IsComplexityNotation(s string) bool {
	if len(s) < 4 || !strings.HasPrefix(s, "O(") || !strings.HasSuffix(s, ")") {
		return false
	}
	depth := 0
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// Tag is one bracket annotation. Tags are values: no span, equality by
// content (see Equal).
type Tag struct {
	Base       string
	Qualifiers []string
	Kind       TagKind
	HTTPMethod string
	HTTPPath   string
}

// NewTag validates and returns a tag, checking decorator bases against
// the default vocabulary.
func NewTag(kind TagKind, base string, qualifiers []string, method, path string) (Tag, error) {
	return NewTagIn(DefaultDecorators(), kind, base, qualifiers, method, path)
}

// NewTagIn validates and returns a tag against an explicit decorator
// vocabulary.
//
// Validation rules:
//   - TagComplexity requires Base to be well-formed O(...) notation.
//   - TagHTTPRoute requires both method and path, a recognized method,
//     and a /-prefixed path; Base is derived as method+path.
//   - TagDecorator with an unrecognized Base silently downgrades to
//     TagCustom.
func NewTagIn(vocab DecoratorSet, kind TagKind, base string, qualifiers []string, method, path string) (Tag, error) {
	tag := Tag{
		Base:       base,
		Qualifiers: qualifiers,
		Kind:       kind,
		HTTPMethod: method,
		HTTPPath:   path,
	}

	switch kind {
	case TagComplexity:
		if !IsComplexityNotation(base) {
			return Tag{}, fmt.Errorf("Invalid complexity notation: %s", base)
		}

	case TagHTTPRoute:
		if method == "" || path == "" {
			return Tag{}, errors.New("HttpRoute tag must have both http_method and http_path")
		}
		if !IsHTTPMethod(method) {
			return Tag{}, fmt.Errorf("Invalid HTTP method: %s", method)
		}
		if !strings.HasPrefix(path, "/") {
			return Tag{}, fmt.Errorf("http_path must start with '/', got %q", path)
		}
		tag.Base = method + path

	case TagDecorator:
		if !vocab.Has(base) {
			tag.Kind = TagCustom
		}
	}

	return tag, nil
}

// IsOperation reports whether the tag is a plain operation annotation.
func (t Tag) IsOperation() bool { return t.Kind == TagOperation }

// IsComplexity reports whether the tag is a pure big-O annotation.
func (t Tag) IsComplexity() bool { return t.Kind == TagComplexity }

// IsDecorator reports whether the tag is a recognized decorator.
func (t Tag) IsDecorator() bool { return t.Kind == TagDecorator }

// IsHTTPRoute reports whether the tag is a route annotation.
func (t Tag) IsHTTPRoute() bool { return t.Kind == TagHTTPRoute }

// IsIO reports whether the tag marks an IO operation.
func (t Tag) IsIO() bool { return t.Base == "IO" }

// IsSync reports whether the tag marks a synchronization point.
func (t Tag) IsSync() bool { return t.Base == "Sync" }

// Complexity returns the tag's big-O annotation: the Base itself for
// complexity tags, otherwise the first qualifier in O(...) form.
func (t Tag) Complexity() (string, bool) {
	if t.Kind == TagComplexity {
		return t.Base, true
	}
	for _, q := range t.Qualifiers {
		if IsComplexityNotation(q) {
			return q, true
		}
	}
	return "", false
}

// Equal compares tags by value.
func (t Tag) Equal(other Tag) bool {
	if t.Kind != other.Kind || t.Base != other.Base {
		return false
	}
	if t.HTTPMethod != other.HTTPMethod || t.HTTPPath != other.HTTPPath {
		return false
	}
	if len(t.Qualifiers) != len(other.Qualifiers) {
		return false
	}
	for i := range t.Qualifiers {
		if t.Qualifiers[i] != other.Qualifiers[i] {
			return false
		}
	}
	return true
}

// String renders the canonical bracket form. Route tags print the method
// immediately followed by the path, with no separator: `[GET/users]`.
func (t Tag) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if t.Kind == TagHTTPRoute {
		b.WriteString(t.HTTPMethod)
		b.WriteString(t.HTTPPath)
	} else {
		b.WriteString(t.Base)
	}
	for _, q := range t.Qualifiers {
		b.WriteByte(':')
		b.WriteString(q)
	}
	b.WriteByte(']')
	return b.String()
}
