package hensel

import (
	"bytes"
	"math/big"
	"sync"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/padic/internal/precision"
	"github.com/agbru/padic/internal/ring"
)

// recordingObserver keeps every event it receives.
type recordingObserver struct {
	mu     sync.Mutex
	events []StepEvent
}

func (o *recordingObserver) Update(event StepEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func TestSubjectRegistration(t *testing.T) {
	t.Parallel()
	s := NewSubject()
	s.Register(nil)
	assert.Equal(t, 0, s.ObserverCount())

	o1, o2 := &recordingObserver{}, &recordingObserver{}
	s.Register(o1)
	s.Register(o2)
	assert.Equal(t, 2, s.ObserverCount())

	s.Unregister(nil)
	s.Unregister(o1)
	assert.Equal(t, 1, s.ObserverCount())

	s.Notify(StepEvent{Lifter: "x"})
	assert.Empty(t, o1.events)
	assert.Len(t, o2.events, 1)
}

func TestLiftNotifiesEveryStep(t *testing.T) {
	t.Parallel()
	f, factors := fourthRootsOfUnity()
	rec := &recordingObserver{}
	l := NewLifter(ring.Integers(), WithName("observed"), WithObserver(rec))

	_, err := l.Lift(f, factors, big.NewInt(5), 37)
	require.NoError(t, err)
	sched, _ := precision.New(1, 37)
	require.Len(t, rec.events, sched.Len())
	for i, ev := range rec.events {
		assert.Equal(t, "observed", ev.Lifter)
		assert.Equal(t, 4, ev.Factors)
		if i == len(rec.events)-1 {
			assert.Equal(t, FinalNoResume, ev.Mode, "last step of a plain lift")
			assert.Equal(t, 37, ev.Step.To)
		} else {
			assert.Equal(t, KeepForContinuation, ev.Mode)
		}
	}

	rec.events = nil
	c, err := l.LiftContinuable(f, factors, big.NewInt(5), 9)
	require.NoError(t, err)
	_, err = l.Resume(f, c, 20)
	require.NoError(t, err)
	for _, ev := range rec.events {
		assert.Equal(t, KeepForContinuation, ev.Mode, "continuations never skip cofactors")
	}
	// 9 -> 10 -> 20: resuming never more than doubles the known precision.
	n := len(rec.events)
	assert.Equal(t, 9, rec.events[n-3].Step.To)
	assert.Equal(t, 10, rec.events[n-2].Step.To)
	assert.Equal(t, 20, rec.events[n-1].Step.To)
}

func TestChannelObserver(t *testing.T) {
	t.Parallel()
	ch := make(chan StepEvent, 1)
	o := NewChannelObserver(ch)
	o.Update(StepEvent{Lifter: "a"})
	o.Update(StepEvent{Lifter: "b"}) // dropped, channel full
	assert.Equal(t, "a", (<-ch).Lifter)
	assert.Empty(t, ch)

	NewChannelObserver(nil).Update(StepEvent{})
}

func TestLoggingObserver(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	f, factors := fourthRootsOfUnity()
	l := NewLifter(ring.Integers(), WithLogger(logger), WithObserver(NewLoggingObserver(logger)))

	_, err := l.Lift(f, factors, big.NewInt(5), 4)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `"message":"precision step"`)
	assert.Contains(t, out, `"message":"factor tree built"`)
	assert.Contains(t, out, `"message":"lift complete"`)
	assert.Contains(t, out, `"mode":"final"`)
}

func TestMetricsObserver(t *testing.T) {
	t.Parallel()
	f, factors := fourthRootsOfUnity()
	l := NewLifter(ring.Integers(), WithName("metrics-test"), WithObserver(NewMetricsObserver()))

	_, err := l.Lift(f, factors, big.NewInt(5), 8)
	require.NoError(t, err)
	assert.Equal(t, 2.0, promtest.ToFloat64(stepsTotal.WithLabelValues("metrics-test", "keep")))
	assert.Equal(t, 1.0, promtest.ToFloat64(stepsTotal.WithLabelValues("metrics-test", "final")))
	assert.Equal(t, 8.0, promtest.ToFloat64(precisionGauge.WithLabelValues("metrics-test")))
}

func TestNoOpObserver(t *testing.T) {
	t.Parallel()
	l := NewLifter(ring.Integers(), WithObserver(NewNoOpObserver()))
	assert.Equal(t, 1, l.Subject().ObserverCount())
	assert.Equal(t, "default", l.Name())
	NewNoOpObserver().Update(StepEvent{})
}
