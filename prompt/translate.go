package prompt

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

const maxPhraseWords = 3

// Translator renders English prompts for display with a static word and
// phrase catalog per language.
type Translator struct {
	supported  []language.Tag
	matcher    language.Matcher
	localizers map[language.Tag]*i18n.Localizer
}

func NewTranslator() (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.ReadDir(locales, "locales")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(locales, path.Join("locales", f.Name())); err != nil {
			return nil, fmt.Errorf("loading %s: %w", f.Name(), err)
		}
	}

	supported := bundle.LanguageTags()
	localizers := make(map[language.Tag]*i18n.Localizer, len(supported))
	for _, tag := range supported {
		localizers[tag] = i18n.NewLocalizer(bundle, tag.String())
	}

	return &Translator{
		supported:  supported,
		matcher:    language.NewMatcher(supported),
		localizers: localizers,
	}, nil
}

// Languages lists the display languages with a catalog, English first.
func (t *Translator) Languages() []string {
	out := make([]string, len(t.supported))
	for i, tag := range t.supported {
		out[i] = tag.String()
	}
	return out
}

// Translate returns the display text and the language actually used.
// Unknown words pass through unchanged; unknown languages fall back to
// English.
func (t *Translator) Translate(english, lang string) (string, string) {
	tag := t.match(lang)
	if tag == language.English {
		return english, tag.String()
	}
	localizer := t.localizers[tag]

	words := strings.Fields(english)
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		matched := false
		for n := min(maxPhraseWords, len(words)-i); n >= 1; n-- {
			text, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: strings.Join(words[i:i+n], " ")})
			if err == nil && text != "" {
				out = append(out, text)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, words[i])
			i++
		}
	}
	return strings.Join(out, " "), tag.String()
}

func (t *Translator) match(lang string) language.Tag {
	if lang == "" {
		return language.English
	}
	requested, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, idx, conf := t.matcher.Match(requested)
	if conf == language.No {
		return language.English
	}
	return t.supported[idx]
}
