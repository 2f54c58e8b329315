package yamlctor

import (
	"errors"
	"fmt"
	"strings"
)

// Keyword enumerates the closed set of annotation keywords recognized
// from a doc-comment's leading "!keyword".
type Keyword string

const (
	KeywordNone           Keyword = ""
	KeywordString         Keyword = "string"
	KeywordList           Keyword = "list"
	KeywordTagged         Keyword = "tagged"
	KeywordRepr           Keyword = "repr"
	KeywordOptional       Keyword = "optional"
	KeywordOptionalString Keyword = "optional_string"
	KeywordIgnored        Keyword = "ignored"
	KeywordCustom         Keyword = "custom"
	KeywordDefault        Keyword = "default"
)

// keywordsByLength lists every recognized keyword, each ahead of any
// shorter keyword that is a prefix of it, so longest-prefix matching
// never stops at "optional" when the comment actually says
// "optional_string".
var keywordsByLength = []Keyword{
	KeywordOptionalString,
	KeywordOptional,
	KeywordString,
	KeywordTagged,
	KeywordIgnored,
	KeywordDefault,
	KeywordCustom,
	KeywordRepr,
	KeywordList,
}

// keywordTakesParam reports which keywords carry a parameter. Only `repr`
// does.
var keywordTakesParam = map[Keyword]bool{
	KeywordRepr: true,
}

// ErrUnknownAnnotation is returned when a doc-comment starts with `!`
// followed by a keyword outside the closed set.
var ErrUnknownAnnotation = errors.New("unknown annotation keyword")

// ErrAnnotationMissingParam is returned when a keyword that requires a
// parameter (only `repr`) has none.
var ErrAnnotationMissingParam = errors.New("annotation missing required parameter")

// Annotation is the result of parsing a single leading annotation out of
// a doc-comment.
type Annotation struct {
	Keyword Keyword
	Param   string // only meaningful when Keyword == KeywordRepr
}

// ParseAnnotation extracts the single leading annotation from a raw
// doc-comment's text. An empty or nil result with nil error means the
// comment carries no annotation (its first non-whitespace octet is not
// `!`, or the comment is empty).
func ParseAnnotation(rawComment string) (Annotation, error) {
	s := strings.TrimSpace(rawComment)
	if s == "" || s[0] != '!' {
		return Annotation{Keyword: KeywordNone}, nil
	}

	body := s[1:]

	for _, kw := range keywordsByLength {
		if !strings.HasPrefix(body, string(kw)) {
			continue
		}

		rest := body[len(kw):]
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\n' {
			// Not actually a boundary; keep trying shorter prefixes, e.g.
			// "!listing" must not match "list".
			continue
		}

		param := strings.TrimSpace(rest)

		if keywordTakesParam[kw] {
			if param == "" {
				return Annotation{}, fmt.Errorf("%w: !%s", ErrAnnotationMissingParam, kw)
			}

			return Annotation{Keyword: kw, Param: firstWord(param)}, nil
		}

		// Keywords that forbid a parameter silently ignore trailing text.
		return Annotation{Keyword: kw}, nil
	}

	word := body

	for i, r := range body {
		if r == ' ' || r == '\t' || r == '\n' {
			word = body[:i]
			break
		}
	}

	return Annotation{}, fmt.Errorf("%w: !%s", ErrUnknownAnnotation, word)
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			return s[:i]
		}
	}

	return s
}
