package game

import (
	"context"
	"fmt"
	"time"

	"doodleparty/analysis"
	"doodleparty/canvas"
	"doodleparty/domain"
	"doodleparty/prompt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type drawingState int

const (
	drawingInitializing drawingState = iota
	drawingInProgress
	drawingEvaluating
	drawingEnded
)

func (s drawingState) String() string {
	switch s {
	case drawingInitializing:
		return "initializing"
	case drawingInProgress:
		return "inProgress"
	case drawingEvaluating:
		return "evaluating"
	case drawingEnded:
		return "ended"
	}
	return "unknown"
}

const (
	FallbackScore    = 30
	FallbackFeedback = "We couldn't evaluate the drawing this time, but thanks for playing!"

	saveResultTimeout = 5 * time.Second
)

type drawingGame struct {
	seq        int
	state      drawingState
	difficulty domain.Difficulty
	language   string
	prompt     prompt.Prompt
	timeLimit  time.Duration
	layout     canvas.Layout
	segments   []canvas.Segment
	owners     map[string]bool
	rasters    map[string]string
	finished   map[string]bool
	deadline   time.Time
	start      *startGameData
	result     *gameEndedData
}

func (g *drawingGame) snapshot() *gameSnapshot {
	s := &gameSnapshot{
		State:    g.state.String(),
		Start:    g.start,
		Rasters:  make(map[string]string, len(g.rasters)),
		Finished: make([]string, 0, len(g.finished)),
	}
	for id, raster := range g.rasters {
		s.Rasters[id] = raster
	}
	for _, seg := range g.segments {
		if seg.PlayerID != nil && g.finished[*seg.PlayerID] {
			s.Finished = append(s.Finished, *seg.PlayerID)
		}
	}
	return s
}

// evaluationJob is everything the scoring worker reads; it never touches the
// room.
type evaluationJob struct {
	seq         int
	roomId      string
	prompt      prompt.Prompt
	difficulty  domain.Difficulty
	layout      canvas.Layout
	segments    []canvas.Segment
	rasters     map[string]string
	playerCount int
}

type evaluationResult struct {
	seq        int
	finalImage string
	score      int
	feedback   string
	breakdown  map[string]int
	fallback   bool
}

func fallbackResult(seq int, finalImage string) evaluationResult {
	return evaluationResult{
		seq:        seq,
		finalImage: finalImage,
		score:      FallbackScore,
		feedback:   FallbackFeedback,
		breakdown:  map[string]int{},
		fallback:   true,
	}
}

func (r *room) startDrawingGame(now time.Time, difficulty domain.Difficulty, language string) {
	r.gameSeq++
	r.phase = PHASE_PLAYING
	r.game = &drawingGame{
		seq:        r.gameSeq,
		state:      drawingInitializing,
		difficulty: difficulty,
		language:   language,
		owners:     map[string]bool{},
		rasters:    map[string]string{},
		finished:   map[string]bool{},
		deadline:   now.Add(r.deps.Timings.Tutorial),
	}

	r.broadcast(encodePacket(EventTutorial, tutorialData{
		GameType: GameTypeDrawing,
		Seconds:  int(r.deps.Timings.Tutorial / time.Second),
	}))
	r.updateDescription()
	log.Info().Str("room", r.id).Str("difficulty", string(difficulty)).Msg("drawing game started")
}

func (r *room) handleSkipTutorial(from Player) {
	if r.game == nil || r.game.state != drawingInitializing || from != r.leader {
		log.Debug().Str("room", r.id).Str("player", from.Id()).Msg("ignoring leaderSkipTutorial")
		return
	}
	r.beginRound(r.now())
}

func (r *room) beginRound(now time.Time) {
	g := r.game

	ids := make([]string, len(r.players))
	for i, p := range r.players {
		ids[i] = p.Id()
		g.owners[p.Id()] = true
	}
	g.layout, g.segments = canvas.ComputeLayout(ids)
	g.timeLimit = g.difficulty.TimeLimit()
	if r.deps.Prompts != nil {
		g.prompt = r.deps.Prompts.Generate(g.difficulty, g.language)
	}

	g.start = &startGameData{
		GameType: GameTypeDrawing,
		Prompt:   g.prompt.Display,
		Settings: gameSettings{
			TimeLimit:   int(g.timeLimit / time.Second),
			Segments:    g.segments,
			Layout:      g.layout,
			PlayerCount: len(ids),
		},
	}
	g.state = drawingInProgress
	g.deadline = now.Add(g.timeLimit)

	r.broadcast(encodePacket(EventStartGame, g.start))
	log.Debug().Str("room", r.id).Str("state", g.state.String()).Str("prompt", g.prompt.English).Msg("round started")
}

func (r *room) handleDrawingAction(from Player, raster string) {
	g := r.game
	if g == nil || g.state != drawingInProgress || !g.owners[from.Id()] {
		return
	}
	g.rasters[from.Id()] = raster
	r.broadcast(encodePacket(EventDrawingUpdate, drawingUpdateData{PlayerId: from.Id(), Raster: raster}))
}

func (r *room) handleFinishedDrawing(from Player) {
	g := r.game
	if g == nil || g.state != drawingInProgress || !g.owners[from.Id()] || g.finished[from.Id()] {
		return
	}
	g.finished[from.Id()] = true
	r.broadcast(encodePacket(EventPlayerStatusUpdate, playerIdData{PlayerId: from.Id()}))
}

func (r *room) handleDrawingTick(now time.Time) {
	g := r.game
	if now.Before(g.deadline) {
		return
	}

	switch g.state {
	case drawingInitializing:
		r.beginRound(now)
	case drawingInProgress:
		r.startEvaluation()
	case drawingEnded:
		r.teardownGame()
	}
}

func (r *room) startEvaluation() {
	g := r.game
	g.state = drawingEvaluating
	r.broadcast(encodePacket(EventEvaluatingDrawing, nil))

	rasters := make(map[string]string, len(g.rasters))
	for id, raster := range g.rasters {
		rasters[id] = raster
	}
	job := evaluationJob{
		seq:         g.seq,
		roomId:      r.id,
		prompt:      g.prompt,
		difficulty:  g.difficulty,
		layout:      g.layout,
		segments:    g.segments,
		rasters:     rasters,
		playerCount: len(g.owners),
	}

	ctx := r.ctx
	scorer := r.deps.Scorer
	compositor := r.deps.Compositor
	timeout := r.deps.Timings.Evaluation
	go func() {
		res := runEvaluation(ctx, job, scorer, compositor, timeout)
		select {
		case r.evaluations <- res:
		case <-ctx.Done():
		}
	}()
}

// runEvaluation composites and scores a round. It always returns: errors,
// panics and timeouts all produce the fallback result.
func runEvaluation(ctx context.Context, job evaluationJob, scorer Scorer, compositor *canvas.Compositor, timeout time.Duration) evaluationResult {
	if compositor == nil {
		compositor = canvas.NewCompositor(canvas.DefaultCellWidth, canvas.DefaultCellHeight)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan evaluationResult, 1)
	failed := make(chan error, 1)
	encoded := make(chan string, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				failed <- fmt.Errorf("%w: %v", ErrEvaluationPanic, rec)
			}
		}()

		img := compositor.Compose(job.layout, job.segments, job.rasters)
		finalImage, err := canvas.EncodeDataURI(img)
		if err != nil {
			failed <- err
			return
		}
		encoded <- finalImage
		if scorer == nil {
			failed <- ErrNoScorer
			return
		}
		eval, err := scorer.Evaluate(img, job.prompt.English, job.difficulty)
		if err != nil {
			failed <- err
			return
		}
		done <- evaluationResult{
			seq:        job.seq,
			finalImage: finalImage,
			score:      eval.Score,
			feedback:   eval.Feedback,
			breakdown:  eval.Breakdown.Strings(),
		}
	}()

	select {
	case res := <-done:
		return res
	case err := <-failed:
		log.Error().Err(err).Str("room", job.roomId).Msg("drawing evaluation failed")
	case <-ctx.Done():
		log.Error().Err(ctx.Err()).Str("room", job.roomId).Msg("drawing evaluation timed out")
	}

	// the composite survives a scorer failure when it was encoded in time
	select {
	case finalImage := <-encoded:
		return fallbackResult(job.seq, finalImage)
	default:
		return fallbackResult(job.seq, "")
	}
}

func (r *room) handleEvaluation(res evaluationResult) {
	g := r.game
	if g == nil || g.seq != res.seq || g.state != drawingEvaluating {
		log.Debug().Str("room", r.id).Int("seq", res.seq).Msg("dropping stale evaluation")
		return
	}

	g.state = drawingEnded
	g.result = &gameEndedData{
		Prompt:     g.prompt.Display,
		FinalImage: res.finalImage,
		Score:      res.score,
		Feedback:   res.feedback,
		Difficulty: string(g.difficulty),
		Breakdown:  res.breakdown,
	}
	g.deadline = r.now().Add(r.deps.Timings.Teardown)
	r.broadcast(encodePacket(EventGameEnded, g.result))
	log.Info().Str("room", r.id).Int("score", res.score).Bool("fallback", res.fallback).Msg("drawing scored")

	if r.deps.Recorder != nil {
		go r.saveResult(r.deps.Recorder, domain.DrawingResult{
			Id:          uuid.NewString(),
			RoomId:      r.id,
			Prompt:      g.prompt.English,
			Difficulty:  g.difficulty,
			Score:       res.score,
			Feedback:    res.feedback,
			Breakdown:   res.breakdown,
			PlayerCount: len(g.owners),
			Fallback:    res.fallback,
			CreatedAt:   r.now().UTC(),
		})
	}
}

func (r *room) saveResult(recorder ResultRecorder, result domain.DrawingResult) {
	ctx, cancel := context.WithTimeout(context.Background(), saveResultTimeout)
	defer cancel()
	if err := recorder.SaveResult(ctx, result); err != nil {
		log.Error().Err(err).Str("room", result.RoomId).Msg("saving drawing result")
	}
}

func (r *room) teardownGame() {
	r.game = nil
	r.phase = PHASE_LOBBY
	clear(r.ready)
	r.broadcast(encodePacket(EventGameClosed, nil))
	r.updateDescription()
	log.Debug().Str("room", r.id).Msg("drawing game released")
}

// analysis.Engine is the production scorer.
var _ Scorer = (*analysis.Engine)(nil)
