package analysis

import (
	"math"
	"strings"

	"doodleparty/domain"
)

type Category string

const (
	CategoryBase    Category = "base"
	CategoryEffort  Category = "effort"
	CategoryColor   Category = "color"
	CategoryTheme   Category = "theme"
	CategorySynergy Category = "synergy"
	CategoryTexture Category = "texture"
	CategoryCount   Category = "count"
	CategoryConcept Category = "concept"
)

var Categories = []Category{
	CategoryBase, CategoryEffort, CategoryColor, CategoryTheme,
	CategorySynergy, CategoryTexture, CategoryCount, CategoryConcept,
}

// Breakdown holds the points each rubric category contributed.
type Breakdown map[Category]int

func (b Breakdown) Total() int {
	sum := 0
	for _, v := range b {
		sum += v
	}
	return sum
}

// Strings converts the breakdown for JSON and storage.
func (b Breakdown) Strings() map[string]int {
	out := make(map[string]int, len(b))
	for k, v := range b {
		out[string(k)] = v
	}
	return out
}

const (
	MinScore  = 20
	MaxScore  = 100
	BaseScore = 20

	effortWeight = 80
	effortCap    = 20

	colorBonus    = 15
	themeBonus    = 10
	conceptBonus  = 15
	countBonus    = 20
	textureBonus  = 15
	synergyBonus  = 15
	brightAbove   = 160
	darkBelow     = 100
	positiveAbove = 150
	negativeBelow = 110
	spikyAbove    = 50
	smoothBelow   = 25
)

const genericEncouragement = "Nice teamwork! Keep experimenting with shapes and colors."

type Result struct {
	Score     int       `json:"score"`
	Feedback  string    `json:"feedback"`
	Breakdown Breakdown `json:"breakdown"`
}

// DifficultyModifier scales raw rubric points before clamping.
func DifficultyModifier(d domain.Difficulty) float64 {
	switch d {
	case domain.DifficultyEasy:
		return 3.1
	case domain.DifficultyHard, domain.DifficultyDifficult, domain.DifficultyPro:
		return 3.0
	default:
		return 1.0
	}
}

// Score applies the rubric. Rules only ever add points; a missing match just
// withholds the bonus.
func Score(m Metrics, kw KeywordSet, d domain.Difficulty) Result {
	bd := Breakdown{}
	for _, c := range Categories {
		bd[c] = 0
	}
	var feedback []string
	say := func(s string) { feedback = append(feedback, s) }

	bd[CategoryBase] = BaseScore

	bd[CategoryEffort] = int(math.Round(math.Min(m.FillRatio*effortWeight, effortCap)))
	if bd[CategoryEffort] >= effortCap {
		say("Great use of the whole canvas!")
	}

	colorMatched := false
	if want, ok := kw.FirstColor(); ok && m.HasDominantColor(want) {
		colorMatched = true
		bd[CategoryColor] += colorBonus
		say("The " + want + " really stands out.")
	}

	if kw.Has(TagBright) && m.AvgBrightness > brightAbove {
		bd[CategoryTheme] += themeBonus
		say("Nice bright colors!")
	}
	if kw.Has(TagDark) && m.AvgBrightness < darkBelow {
		bd[CategoryTheme] += themeBonus
		say("Love the dark atmosphere.")
	}

	if kw.Has(TagMoodPositive) && m.AvgBrightness > positiveAbove {
		bd[CategoryConcept] += conceptBonus
		say("It feels cheerful.")
	}
	if kw.Has(TagMoodNegative) && m.AvgBrightness < negativeBelow {
		bd[CategoryConcept] += conceptBonus
		say("The gloomy mood comes through.")
	}
	if kw.Has(TagHighActivity) && m.BlobCount() > 4 {
		bd[CategoryConcept] += conceptBonus
		say("So much going on, very lively!")
	}
	if kw.Has(TagLowActivity) && m.BlobCount() <= 2 {
		bd[CategoryConcept] += conceptBonus
		say("Calm and simple, just right.")
	}

	if kw.Has(TagCount2) {
		if m.BlobCount() == 2 {
			bd[CategoryCount] += countBonus
			say("Exactly two, perfect!")
		} else {
			say("The prompt asked for two separate things.")
		}
	}

	shapeMatched := false
	if largest, ok := Largest(m.Blobs); ok {
		ratio := largest.ComplexityRatio()
		if kw.Has(TagTextureSpiky) && ratio > spikyAbove {
			bd[CategoryTexture] += textureBonus
			say("Those spiky edges look sharp.")
		}
		if kw.Has(TagTextureSmooth) && ratio < smoothBelow {
			bd[CategoryTexture] += textureBonus
			shapeMatched = true
			say("Nice smooth shape.")
		}
		if kw.Has(TagTextureFluffy) && ratio >= smoothBelow && ratio <= spikyAbove {
			bd[CategoryTexture] += textureBonus
			say("It looks soft and fluffy.")
		}
	}

	if (kw.Has(TagSubjectSun) || kw.Has(TagSubjectBall)) && colorMatched && shapeMatched {
		bd[CategorySynergy] += synergyBonus
		say("Color and shape work together perfectly!")
	}

	score := int(math.Round(float64(bd.Total()) * DifficultyModifier(d)))
	score = max(MinScore, min(MaxScore, score))

	text := strings.Join(feedback, " ")
	if text == "" {
		text = genericEncouragement
	}

	return Result{Score: score, Feedback: text, Breakdown: bd}
}
