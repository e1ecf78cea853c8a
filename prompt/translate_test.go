package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	t.Parallel()
	tr, err := NewTranslator()
	require.NoError(t, err)

	testCases := []struct {
		desc     string
		english  string
		lang     string
		want     string
		wantLang string
	}{
		{desc: "english passes through", english: "A Red Ball", lang: "en", want: "A Red Ball", wantLang: "en"},
		{desc: "spanish words", english: "A Red Ball", lang: "es", want: "Un Rojo Balón", wantLang: "es"},
		{desc: "french words", english: "A Red Ball", lang: "fr", want: "Un Rouge Ballon", wantLang: "fr"},
		{desc: "phrases win over words", english: "A Robot Cat Riding a Bike at the Beach", lang: "es", want: "Un Gato Robot Montando en Bici en la Playa", wantLang: "es"},
		{desc: "regional tag matches base language", english: "An Egg", lang: "es-MX", want: "Un Huevo", wantLang: "es"},
		{desc: "unknown words are kept", english: "A Purple Zebra", lang: "fr", want: "Un Violet Zebra", wantLang: "fr"},
		{desc: "unsupported language falls back", english: "A Sun", lang: "de", want: "A Sun", wantLang: "en"},
		{desc: "garbage language falls back", english: "A Sun", lang: "???", want: "A Sun", wantLang: "en"},
		{desc: "empty language falls back", english: "A Sun", lang: "", want: "A Sun", wantLang: "en"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			got, lang := tr.Translate(tc.english, tc.lang)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantLang, lang)
		})
	}
}

func TestTranslator_CoversVocabulary(t *testing.T) {
	t.Parallel()
	tr, err := NewTranslator()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en", "es", "fr"}, tr.Languages())

	var vocabulary []string
	for _, list := range [][]string{tones, adjectives, subjects, actions, places} {
		vocabulary = append(vocabulary, list...)
	}
	for _, lang := range []string{"es", "fr"} {
		for _, word := range vocabulary {
			if word == "Cactus" || word == "Robot" || word == "Dragon" || word == "Orange" {
				continue
			}
			got, _ := tr.Translate(word, lang)
			assert.NotEqual(t, word, got, "%s has no %s entry", word, lang)
		}
	}
}
