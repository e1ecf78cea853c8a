package analysis

import "strings"

// Visual feature tags understood by the rubric.
const (
	TagBright        = "bright"
	TagDark          = "dark"
	TagMoodPositive  = "mood_positive"
	TagMoodNegative  = "mood_negative"
	TagHighActivity  = "high_activity"
	TagLowActivity   = "low_activity"
	TagCount2        = "count_2"
	TagTextureSpiky  = "texture_spiky"
	TagTextureSmooth = "texture_smooth"
	TagTextureFluffy = "texture_fluffy"
	TagShapeRound    = "shape_round"
	TagSubjectSun    = "subject_sun"
	TagSubjectBall   = "subject_ball"

	colorTagPrefix = "color_"
)

// KeywordSet is a set of tags that also remembers the order in which tags
// were first added.
type KeywordSet struct {
	order []string
	index map[string]struct{}
}

func NewKeywordSet(tags ...string) KeywordSet {
	ks := KeywordSet{index: make(map[string]struct{})}
	ks.add(tags...)
	return ks
}

func (ks *KeywordSet) add(tags ...string) {
	if ks.index == nil {
		ks.index = make(map[string]struct{})
	}
	for _, t := range tags {
		if _, ok := ks.index[t]; ok {
			continue
		}
		ks.index[t] = struct{}{}
		ks.order = append(ks.order, t)
	}
}

func (ks KeywordSet) Has(tag string) bool {
	_, ok := ks.index[tag]
	return ok
}

func (ks KeywordSet) Len() int {
	return len(ks.order)
}

// Tags returns the tags in first-insertion order.
func (ks KeywordSet) Tags() []string {
	out := make([]string, len(ks.order))
	copy(out, ks.order)
	return out
}

// FirstColor returns the color name of the first color_* tag added.
func (ks KeywordSet) FirstColor() (string, bool) {
	for _, t := range ks.order {
		if strings.HasPrefix(t, colorTagPrefix) {
			return strings.TrimPrefix(t, colorTagPrefix), true
		}
	}
	return "", false
}

// maxPhraseWords bounds the multi-word keys tried before single words.
const maxPhraseWords = 3

var keywordTable = map[string][]string{
	// colors
	"Red":    {"color_red"},
	"Yellow": {"color_yellow"},
	"Blue":   {"color_blue"},
	"Green":  {"color_green"},
	"Orange": {"color_orange"},
	"Purple": {"color_purple"},
	"Brown":  {"color_brown"},
	"Black":  {"color_black"},
	"Gray":   {"color_gray"},

	// adjectives
	"Dark":   {TagDark},
	"Bright": {TagBright},
	"Shiny":  {TagBright},
	"Spiky":  {TagTextureSpiky},
	"Smooth": {TagTextureSmooth},
	"Fluffy": {TagTextureFluffy},
	"Round":  {TagShapeRound},
	"Two":    {TagCount2},
	"Busy":   {TagHighActivity},
	"Lonely": {TagLowActivity, TagMoodNegative},

	// tones
	"Happy":    {TagMoodPositive},
	"Cheerful": {TagMoodPositive, TagBright},
	"Sad":      {TagMoodNegative},
	"Gloomy":   {TagMoodNegative, TagDark},
	"Sleepy":   {TagLowActivity},
	"Angry":    {TagMoodNegative, TagTextureSpiky},

	// subjects
	"Sun":       {TagSubjectSun, "color_yellow", TagBright, TagTextureSmooth},
	"Ball":      {TagShapeRound, TagSubjectBall},
	"Cat":       {TagTextureFluffy},
	"Dog":       {TagTextureFluffy},
	"Monster":   {TagMoodNegative, TagTextureSpiky},
	"Cactus":    {"color_green", TagTextureSpiky},
	"Tree":      {"color_green"},
	"Cloud":     {TagTextureFluffy, TagBright},
	"Fish":      {"color_blue"},
	"Apple":     {"color_red", TagShapeRound},
	"Pumpkin":   {"color_orange", TagShapeRound},
	"Star":      {"color_yellow", TagTextureSpiky},
	"Moon":      {TagShapeRound, TagDark},
	"Bear":      {"color_brown", TagTextureFluffy},
	"Robot":     {"color_gray"},
	"Dragon":    {"color_green", TagTextureSpiky, TagHighActivity},
	"Twins":     {TagCount2},
	"Bubble":    {TagShapeRound, TagTextureSmooth},
	"Egg":       {TagShapeRound, TagTextureSmooth},
	"Ice Cream": {TagMoodPositive, TagTextureSmooth},
	"Robot Cat": {"color_gray", TagTextureSpiky},

	// actions
	"Dancing":       {TagHighActivity, TagMoodPositive},
	"Running":       {TagHighActivity},
	"Juggling":      {TagHighActivity},
	"Flying":        {TagHighActivity},
	"Sleeping":      {TagLowActivity},
	"Reading":       {TagLowActivity},
	"Crying":        {TagMoodNegative},
	"Laughing":      {TagMoodPositive},
	"Riding a Bike": {TagHighActivity},

	// places
	"Space":    {TagDark},
	"Night":    {TagDark},
	"Beach":    {TagBright, "color_yellow"},
	"Rain":     {TagMoodNegative, "color_blue"},
	"Mountain": {TagTextureSpiky},
	"Forest":   {"color_green"},
	"Garden":   {TagMoodPositive, "color_green"},
}

// Resolve maps an English prompt to the visual tags of its words. Lookups are
// exact and case-sensitive. At each position the longest multi-word table key
// is tried first, then the single word; unknown words contribute nothing.
func Resolve(prompt string) KeywordSet {
	ks := NewKeywordSet()
	words := splitWords(stripArticle(prompt))

	for i := 0; i < len(words); {
		matched := false
		for n := min(maxPhraseWords, len(words)-i); n >= 1; n-- {
			if tags, ok := keywordTable[strings.Join(words[i:i+n], " ")]; ok {
				ks.add(tags...)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return ks
}

func stripArticle(prompt string) string {
	for _, article := range []string{"an ", "a "} {
		if len(prompt) >= len(article) && strings.EqualFold(prompt[:len(article)], article) {
			return prompt[len(article):]
		}
	}
	return prompt
}

func splitWords(s string) []string {
	parts := strings.Split(s, " ")
	words := parts[:0]
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}
