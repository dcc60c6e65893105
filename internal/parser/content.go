package parser

import (
	"regexp"
	"strings"

	"hyperlex/internal/token"
)

var (
	codeElement = regexp.MustCompile(`(?i)^<code.*>.*</code.*>$`)
	htmlElement = regexp.MustCompile(`^<.+>$`)
)

// ResolveContentType decides how a raw hyper span reads to later passes.
// Multi-line spans and HTML other than <code> are HyperContent; inline code
// is CodeContent.
func ResolveContentType(span string) token.Type {
	switch {
	case strings.Contains(span, "\n"):
		return token.HyperContent
	case codeElement.MatchString(span):
		return token.CodeContent
	case htmlElement.MatchString(span):
		return token.HyperContent
	}
	return token.CodeContent
}
