// Package title turns raw video titles into filesystem-safe display names.
package title

import (
	"context"
	"regexp"
	"strings"

	"vidgrab/internal/model"
)

// Placeholder is used when a title sanitizes to nothing.
const Placeholder = "video"

var (
	separators = regexp.MustCompile(`[\s\p{Z}\v\x{85}\x{FEFF}:?.|\\/]`)
	hyphenRuns = regexp.MustCompile(`-{2,}`)
	stripped   = strings.NewReplacer(`"`, "", "*", "")
)

// Sanitize replaces whitespace, colons, question marks, periods, pipes and
// slashes with a hyphen, drops quotes and asterisks, then collapses hyphen runs.
// Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	s = separators.ReplaceAllString(s, "-")
	s = stripped.Replace(s)
	s = hyphenRuns.ReplaceAllString(s, "-")
	if s == "" || s == "-" {
		return Placeholder
	}
	return s
}

// Translator translates text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, lang string) (string, error)
}

// Formatter builds ResolvedItems, translating titles when a language is set.
type Formatter struct {
	tr Translator
}

// NewFormatter returns a Formatter. tr may be nil when translation is never used.
func NewFormatter(tr Translator) *Formatter {
	return &Formatter{tr: tr}
}

// Format never fails: any translation problem falls back to the sanitized
// original with TranslationFailed set.
func (f *Formatter) Format(ctx context.Context, md model.VideoMetadata, lang string) model.ResolvedItem {
	base := Sanitize(md.Title)
	item := model.ResolvedItem{Metadata: md, DisplayTitle: base}

	lang = strings.TrimSpace(lang)
	if lang == "" {
		return item
	}
	if f.tr == nil {
		item.TranslationFailed = true
		return item
	}

	translated, err := f.tr.Translate(ctx, base, lang)
	if err != nil || strings.TrimSpace(translated) == "" {
		item.TranslationFailed = true
		return item
	}
	item.DisplayTitle = Sanitize(translated)
	return item
}
