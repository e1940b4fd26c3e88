package session

import (
	"context"
	"math/rand"
	"testing"

	"go.uber.org/goleak"

	"pitsweeper/internal/world"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func pitlessMaze(t *testing.T) *world.Maze {
	t.Helper()
	m, err := world.Parse([]string{
		"XXXXX",
		"XG..X",
		"X...X",
		"X..@X",
		"XXXXX",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return m
}

func TestRunReachesGoalOnPitlessMaze(t *testing.T) {
	r := NewRunner(pitlessMaze(t), rand.New(rand.NewSource(1)), 50)
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Reached {
		t.Fatal("agent failed to reach the goal on an open maze")
	}
	if res.PitHits != 0 {
		t.Errorf("pitHits = %d, want 0", res.PitHits)
	}
	if res.Fallbacks != 0 {
		t.Errorf("fallbacks = %d, want 0", res.Fallbacks)
	}
	if res.Score != res.Steps {
		t.Errorf("score = %d with %d steps; pit-free runs cost one per move", res.Score, res.Steps)
	}
	if res.EpisodeID == "" {
		t.Error("episode id must be assigned")
	}
}

func TestRunAvoidsLonePit(t *testing.T) {
	m, err := world.Parse([]string{
		"XXXXX",
		"XG..X",
		"X.P.X",
		"X..@X",
		"XXXXX",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, runErr := NewRunner(m, rand.New(rand.NewSource(1)), 50).Run(context.Background())
	if runErr != nil {
		t.Fatalf("Run: %v", runErr)
	}
	if !res.Reached {
		t.Fatal("agent failed to reach the goal")
	}
	if res.PitHits != 0 {
		t.Errorf("agent stepped in the deducible pit %d times", res.PitHits)
	}
}

func TestStepOnceEmitsObserverEvents(t *testing.T) {
	var seen []Step
	r := NewRunner(pitlessMaze(t), rand.New(rand.NewSource(1)), 50,
		WithObserver(func(s Step) { seen = append(seen, s) }))

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(seen) != res.Steps {
		t.Fatalf("observer saw %d steps, result reports %d", len(seen), res.Steps)
	}
	for i, s := range seen {
		if s.Index != i+1 {
			t.Fatalf("step %d has index %d", i, s.Index)
		}
	}
}

func TestStepOnceAfterDone(t *testing.T) {
	r := NewRunner(pitlessMaze(t), rand.New(rand.NewSource(1)), 50)
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	_, done, err := r.StepOnce(context.Background())
	if !done || err != nil {
		t.Fatalf("StepOnce after goal = (done=%v, err=%v), want (true, nil)", done, err)
	}
}

func TestRunStepCap(t *testing.T) {
	r := NewRunner(pitlessMaze(t), rand.New(rand.NewSource(1)), 1)
	res, err := r.Run(context.Background())
	if err == nil {
		t.Fatal("expected step cap error")
	}
	if res.Reached {
		t.Fatal("one step cannot reach the goal here")
	}
	if res.Steps != 1 {
		t.Errorf("steps = %d, want 1", res.Steps)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(pitlessMaze(t), rand.New(rand.NewSource(1)), 50).Run(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
