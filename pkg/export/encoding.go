package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ytcrawl/ytcrawl/pkg/errors"
)

// smartTransform decomposes text (NFKD) and strips combining marks, so
// accented letters fold to their ASCII base before the ASCII filter runs.
var smartTransform = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalizer returns the text transformation for the given encoding mode:
//
//   - "utf-8": replace invalid byte sequences, keep everything else
//   - "ascii": drop every non-ASCII rune
//   - "smart": transliterate accents to ASCII first, then drop the rest
func Normalizer(encoding string) (func(string) string, error) {
	switch encoding {
	case "utf-8":
		return func(s string) string {
			return strings.ToValidUTF8(s, "")
		}, nil
	case "ascii":
		return stripNonASCII, nil
	case "smart":
		return func(s string) string {
			folded, _, err := transform.String(smartTransform, s)
			if err != nil {
				folded = s
			}
			return stripNonASCII(folded)
		}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidEncoding,
			"invalid encoding %q (expected ascii, utf-8, or smart)", encoding)
	}
}

func stripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}
