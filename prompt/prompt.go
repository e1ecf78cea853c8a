package prompt

import (
	"math/rand"
	"strings"
	"sync"

	"doodleparty/domain"
)

type Prompt struct {
	English  string `json:"english"`
	Display  string `json:"display"`
	Language string `json:"language"`
}

var (
	tones      = []string{"Happy", "Cheerful", "Sad", "Gloomy", "Sleepy", "Angry"}
	adjectives = []string{
		"Red", "Yellow", "Blue", "Green", "Orange", "Purple", "Brown", "Black", "Gray",
		"Dark", "Bright", "Shiny", "Spiky", "Smooth", "Fluffy", "Round", "Busy", "Lonely",
	}
	subjects = []string{
		"Sun", "Ball", "Cat", "Dog", "Monster", "Cactus", "Tree", "Cloud", "Fish", "Apple",
		"Pumpkin", "Star", "Moon", "Bear", "Robot", "Dragon", "Bubble", "Egg", "Ice Cream", "Robot Cat",
	}
	actions = []string{
		"Dancing", "Running", "Juggling", "Flying", "Sleeping", "Reading", "Crying", "Laughing", "Riding a Bike",
	}
	places = []string{
		"in Space", "at the Beach", "in the Rain", "on a Mountain", "in a Forest", "at Night", "in a Garden",
	}
)

const (
	proToneChance  = 0.5
	proPlaceChance = 0.9
)

// Generator builds random prompts whose words all come from the scorer's
// keyword vocabulary. It is safe for concurrent use.
type Generator struct {
	mu         sync.Mutex
	rng        *rand.Rand
	translator *Translator
}

func NewGenerator(rng *rand.Rand, translator *Translator) *Generator {
	return &Generator{rng: rng, translator: translator}
}

// Generate returns a prompt for the difficulty, translated for display into
// lang when a catalog exists for it.
func (g *Generator) Generate(d domain.Difficulty, lang string) Prompt {
	english := g.English(d)
	if g.translator == nil {
		return Prompt{English: english, Display: english, Language: "en"}
	}
	display, tag := g.translator.Translate(english, lang)
	return Prompt{English: english, Display: display, Language: tag}
}

// Languages lists the display languages prompts can be generated in.
func (g *Generator) Languages() []string {
	if g.translator == nil {
		return []string{"en"}
	}
	return g.translator.Languages()
}

func (g *Generator) English(d domain.Difficulty) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var words []string
	pick := func(from []string) { words = append(words, from[g.rng.Intn(len(from))]) }

	switch d {
	case domain.DifficultyHard:
		pick(adjectives)
		pick(subjects)
	case domain.DifficultyDifficult:
		pick(adjectives)
		pick(subjects)
		pick(actions)
	case domain.DifficultyPro:
		if g.rng.Float64() < proToneChance {
			pick(tones)
		}
		pick(adjectives)
		pick(subjects)
		pick(actions)
		if g.rng.Float64() < proPlaceChance {
			pick(places)
		}
	default:
		pick(subjects)
	}

	return withArticle(strings.Join(words, " "))
}

func withArticle(phrase string) string {
	if phrase != "" && strings.ContainsRune("AEIOU", rune(phrase[0])) {
		return "An " + phrase
	}
	return "A " + phrase
}
