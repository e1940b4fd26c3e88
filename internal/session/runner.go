// Package session runs complete exploration episodes: it wires the maze,
// the agent, and the optional episode store into a perceive/think/move
// loop with a step cap, and emits per-step events for the CLI and TUI.
package session

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"pitsweeper/internal/agent"
	"pitsweeper/internal/core"
	"pitsweeper/internal/logging"
	"pitsweeper/internal/perception"
	"pitsweeper/internal/store"
	"pitsweeper/internal/types"
	"pitsweeper/internal/world"
)

// Step describes one completed loop iteration.
type Step struct {
	Index      int
	Perception perception.Perception
	Target     types.Coord
	Score      int
	PitHits    int
	KBSize     int
}

// Result summarizes a finished episode.
type Result struct {
	EpisodeID string
	Reached   bool
	Steps     int
	Score     int
	PitHits   int
	Fallbacks int
}

// Runner drives one episode to completion.
type Runner struct {
	maze     *world.Maze
	agent    *agent.Agent
	kb       core.KnowledgeBase
	recorder *store.Recorder // nil disables persistence
	maxSteps int
	observer func(Step) // nil disables step callbacks

	episodeID string
	steps     int
}

// Option configures a Runner.
type Option func(*Runner)

// WithRecorder persists the episode through rec.
func WithRecorder(rec *store.Recorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

// WithObserver invokes fn after every step, on the runner's goroutine.
func WithObserver(fn func(Step)) Option {
	return func(r *Runner) { r.observer = fn }
}

// NewRunner builds a runner over a maze. rng seeds the agent's fallback
// selection. maxSteps bounds the loop; a maze the agent cannot finish in
// that many moves ends the episode with Reached=false.
func NewRunner(maze *world.Maze, rng *rand.Rand, maxSteps int, opts ...Option) *Runner {
	kb := core.NewClauseStore()
	r := &Runner{
		maze:      maze,
		kb:        kb,
		agent:     agent.New(maze, kb, rng),
		maxSteps:  maxSteps,
		episodeID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EpisodeID returns the uuid assigned to this episode.
func (r *Runner) EpisodeID() string { return r.episodeID }

// Maze exposes the underlying world, mainly for rendering.
func (r *Runner) Maze() *world.Maze { return r.maze }

// Agent exposes the controller, mainly for rendering its knowledge sets.
func (r *Runner) Agent() *agent.Agent { return r.agent }

// StepOnce advances the episode by one perceive/think/move cycle. It
// returns done=true when the goal is reached or the step cap is hit.
func (r *Runner) StepOnce(ctx context.Context) (Step, bool, error) {
	if err := ctx.Err(); err != nil {
		return Step{}, true, err
	}
	if r.maze.Done() {
		return Step{}, true, nil
	}
	if r.steps >= r.maxSteps {
		return Step{}, true, fmt.Errorf("step cap %d reached before goal", r.maxSteps)
	}

	p := r.maze.Perceive()
	target, err := r.agent.Think(p)
	if err != nil {
		return Step{}, true, fmt.Errorf("think at %s: %w", p.Loc, err)
	}
	if err := r.maze.MoveTo(target); err != nil {
		return Step{}, true, fmt.Errorf("move to %s: %w", target, err)
	}
	r.steps++

	step := Step{
		Index:      r.steps,
		Perception: p,
		Target:     target,
		Score:      r.maze.Score(),
		PitHits:    r.maze.PitHits(),
		KBSize:     r.kb.Size(),
	}
	if r.recorder != nil {
		if err := r.recorder.RecordStep(ctx, r.episodeID, store.StepRecord{
			Index:   step.Index,
			Loc:     p.Loc,
			Tile:    string(p.Tile),
			Target:  target,
			Score:   step.Score,
			PitHits: step.PitHits,
			KBSize:  step.KBSize,
		}); err != nil {
			logging.Get(logging.CategoryStore).Error("record step %d: %v", step.Index, err)
		}
	}
	if r.observer != nil {
		r.observer(step)
	}
	return step, r.maze.Done(), nil
}

// Run drives the episode to completion and returns its summary. The
// episode row is written up front when a recorder is attached and
// finalized with the outcome afterwards.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	logging.Session("episode %s starting: %dx%d maze, goal %s",
		r.episodeID, r.maze.Width(), r.maze.Height(), r.maze.GoalLoc())

	if r.recorder != nil {
		if err := r.recorder.BeginEpisode(ctx, r.episodeID, r.maze.Width(), r.maze.Height()); err != nil {
			return Result{}, fmt.Errorf("begin episode: %w", err)
		}
	}

	var runErr error
	for {
		_, done, err := r.StepOnce(ctx)
		if err != nil {
			runErr = err
		}
		if done {
			break
		}
	}

	res := Result{
		EpisodeID: r.episodeID,
		Reached:   r.maze.Done(),
		Steps:     r.steps,
		Score:     r.maze.Score(),
		PitHits:   r.maze.PitHits(),
		Fallbacks: r.agent.FallbackCount(),
	}
	logging.Session("episode %s finished: reached=%v steps=%d score=%d pits=%d",
		res.EpisodeID, res.Reached, res.Steps, res.Score, res.PitHits)

	if r.recorder != nil {
		if err := r.recorder.FinishEpisode(ctx, r.episodeID, res.Reached, res.Steps, res.Score, res.PitHits); err != nil {
			logging.Get(logging.CategoryStore).Error("finish episode: %v", err)
		}
	}
	return res, runErr
}
