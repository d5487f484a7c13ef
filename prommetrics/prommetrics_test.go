package prommetrics_test

import (
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/tomasbasham/toggler"
	"github.com/tomasbasham/toggler/prommetrics"
)

func TestHook(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		reg := prometheus.NewPedanticRegistry()
		hook := prommetrics.New(reg, "test")

		toggle := toggler.New(
			toggler.WithDelays(10*time.Millisecond, 20*time.Millisecond),
			toggler.WithMetricsHook(hook),
		)

		one := toggler.NewTask("one", func() {})
		two := toggler.NewTask("two", func() {})

		// Arms one, then two (canceling one), then one (canceling two).
		for range 3 {
			toggle.Schedule(one, two)
		}
		time.Sleep(50 * time.Millisecond)

		require.Equal(t, 2.0, testutil.ToFloat64(hook.Armed.WithLabelValues("one", "one")))
		require.Equal(t, 1.0, testutil.ToFloat64(hook.Armed.WithLabelValues("two", "two")))
		require.Equal(t, 1.0, testutil.ToFloat64(hook.Canceled.WithLabelValues("one")))
		require.Equal(t, 1.0, testutil.ToFloat64(hook.Canceled.WithLabelValues("two")))
		require.Equal(t, 1.0, testutil.ToFloat64(hook.Fired.WithLabelValues("one")))
		require.Equal(t, 0.0, testutil.ToFloat64(hook.Fired.WithLabelValues("two")))

		expected := `
# HELP test_toggler_fired_total Total number of times a task ran
# TYPE test_toggler_fired_total counter
test_toggler_fired_total{task="one"} 1
test_toggler_fired_total{task="two"} 0
`
		require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_toggler_fired_total"))
	})
}

func TestNew_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	prommetrics.New(reg, "dup")

	require.Panics(t, func() { prommetrics.New(reg, "dup") })
}
