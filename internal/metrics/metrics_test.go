package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/smart-parking-backend/internal/slot"
)

type fakeCounter struct {
	counts map[slot.Status]int
	err    error
}

func (f *fakeCounter) CountByStatus(context.Context) (map[slot.Status]int, error) {
	return f.counts, f.err
}

func TestRecorder(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Transition("book")
	m.Transition("book")
	m.Failure("exit", "not_found")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("book")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.transitions.WithLabelValues("cancel")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("exit", "not_found")))
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	m := New(prometheus.NewRegistry())
	counter := &fakeCounter{counts: map[slot.Status]int{slot.StatusFree: 3, slot.StatusOccupied: 2}}
	r := NewRefresher(counter, m, zap.NewNop())

	require.NoError(t, r.Refresh(ctx))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.slots.WithLabelValues("free")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.slots.WithLabelValues("occupied")))

	counter.counts = map[slot.Status]int{slot.StatusFree: 5}
	require.NoError(t, r.Refresh(ctx))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.slots.WithLabelValues("occupied")))

	counter.err = errors.New("connection refused")
	assert.Error(t, r.Refresh(ctx))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.slots.WithLabelValues("free")))
}

func TestRefresherStart(t *testing.T) {
	m := New(prometheus.NewRegistry())
	counter := &fakeCounter{counts: map[slot.Status]int{slot.StatusFree: 1}}

	r := NewRefresher(counter, m, zap.NewNop())
	assert.Error(t, r.Start("not a schedule"))

	r = NewRefresher(counter, m, zap.NewNop())
	require.NoError(t, r.Start("@every 1h"))
	defer r.Stop()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slots.WithLabelValues("free")))
}
