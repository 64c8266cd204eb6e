package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingSystem appends its name to a shared trace when processed.
type recordingSystem struct {
	name  string
	trace *[]string
	err   error
}

func (s *recordingSystem) Process(context.Context, *World) error {
	*s.trace = append(*s.trace, s.name)
	return s.err
}

var _ System = (*recordingSystem)(nil)

func TestScheduler_AscendingPriorityStableTies(t *testing.T) {
	var trace []string
	sched := NewScheduler()
	w := NewWorld()

	sched.Register(&recordingSystem{name: "b", trace: &trace}, 5)
	sched.Register(&recordingSystem{name: "a", trace: &trace}, 0)
	sched.Register(&recordingSystem{name: "c", trace: &trace}, 5)
	sched.Register(&recordingSystem{name: "d", trace: &trace}, 10)

	assert.NoError(t, sched.Execute(context.Background(), w))
	assert.Equal(t, []string{"a", "b", "c", "d"}, trace)
	assert.Equal(t, 4, sched.Len())
}

func TestScheduler_LaterSystemSeesEarlierEffects(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()

	w.RegisterSystem(systemFunc(func(_ context.Context, w *World) error {
		w.AddComponent(id, &position{X: 1})
		return nil
	}), 0)

	var observed bool
	w.RegisterSystem(systemFunc(func(_ context.Context, w *World) error {
		observed = w.HasComponent(id, "position")
		return nil
	}), 5)

	assert.NoError(t, w.Tick(context.Background()))
	assert.True(t, observed)
}

func TestScheduler_ErrorAbortsTick(t *testing.T) {
	var trace []string
	sched := NewScheduler()
	w := NewWorld()

	boom := errors.New("boom")
	sched.Register(&recordingSystem{name: "a", trace: &trace}, 0)
	sched.Register(&recordingSystem{name: "b", trace: &trace, err: boom}, 1)
	sched.Register(&recordingSystem{name: "c", trace: &trace}, 2)

	err := sched.Execute(context.Background(), w)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b"}, trace)
}

// systemFunc adapts a function to the System interface for tests.
type systemFunc func(ctx context.Context, w *World) error

func (f systemFunc) Process(ctx context.Context, w *World) error { return f(ctx, w) }
