package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagisham/syren"
	"github.com/nagisham/syren/event"
)

func newObserver(t *testing.T) (*Observer, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewObserver(func(o *Options) { o.Registerer = reg }), reg
}

func TestObserver_CountsEmitterActivity(t *testing.T) {
	obs, reg := newObserver(t)
	em := event.New(func(o *event.Options) { o.Observer = obs })

	em.Listen(event.ListenOptions{Type: event.Change, Each: func(v any) {
		if v == 3 {
			panic("three")
		}
	}})

	em.Fire(event.Change, 1)
	em.Fire(event.Change, 1)
	em.Fire(event.Change, 3)

	assert.Equal(t, 3.0, testutil.ToFloat64(obs.fired.WithLabelValues(event.Change)))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.fired.WithLabelValues(event.Listening(event.Change))))
	assert.Equal(t, 2.0, testutil.ToFloat64(obs.delivered.WithLabelValues(event.Change)))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.skipped.WithLabelValues(event.Change)))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.recovered.WithLabelValues(event.Change)))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestObserver_Namespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewObserver(func(o *Options) {
		o.Registerer = reg
		o.Namespace = "app"
		o.Subsystem = "state"
	})
	obs.Fired("change")

	n, err := testutil.GatherAndCount(reg, "app_state_events_fired_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestObserver_WiredThroughContainer(t *testing.T) {
	obs, _ := newObserver(t)
	counter := syren.NewSignal(syren.WithInitial(0), syren.WithObserver[int](obs))

	var seen []int
	counter.OnChange(func(v int) { seen = append(seen, v) })
	counter.Set(5)

	assert.Equal(t, []int{0, 5}, seen)
	assert.GreaterOrEqual(t, testutil.ToFloat64(obs.fired.WithLabelValues(event.Change)), 1.0)
	assert.Equal(t, 2.0, testutil.ToFloat64(obs.delivered.WithLabelValues(event.Change)))
}
