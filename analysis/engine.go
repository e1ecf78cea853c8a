// Package analysis scores a finished drawing against its English prompt with
// pixel heuristics: nearest-palette colors, connected components and
// perimeter/area complexity, read through a keyword rubric.
package analysis

import (
	"errors"
	"image"

	"doodleparty/domain"
)

var ErrNoImage = errors.New("no-image")

// Evaluation is a rubric result together with what it was computed from.
type Evaluation struct {
	Result
	Metrics  Metrics  `json:"metrics"`
	Keywords []string `json:"keywords"`
}

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs extraction, keyword resolution and the rubric. englishPrompt
// must be the untranslated prompt; the keyword table only knows English.
func (e *Engine) Evaluate(img image.Image, englishPrompt string, d domain.Difficulty) (Evaluation, error) {
	if img == nil {
		return Evaluation{}, ErrNoImage
	}
	metrics := Extract(NewPixelBuffer(img))
	keywords := Resolve(englishPrompt)
	return Evaluation{
		Result:   Score(metrics, keywords, d),
		Metrics:  metrics,
		Keywords: keywords.Tags(),
	}, nil
}
