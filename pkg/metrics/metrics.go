// Package metrics exports the reactive runtime and list reconciler counters
// to Prometheus.
package metrics

import (
	stderrors "errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/smallie-dev/smallie/pkg/reactive"
	"github.com/smallie-dev/smallie/pkg/ui"
)

type counterFunc struct {
	subsystem string
	name      string
	help      string
	read      func() uint64
}

func counters() []counterFunc {
	return []counterFunc{
		{"reactive", "writes_total", "Signal writes, changed or not.", func() uint64 { return reactive.ReadStats().Writes }},
		{"reactive", "notifications_total", "Signal writes that changed the value.", func() uint64 { return reactive.ReadStats().Notifications }},
		{"reactive", "effect_runs_total", "Effect body executions.", func() uint64 { return reactive.ReadStats().EffectRuns }},
		{"reactive", "effects_disposed_total", "Effects disposed.", func() uint64 { return reactive.ReadStats().Disposed }},
		{"reactive", "subscriptions_pruned_total", "Disposed subscriptions culled during notification.", func() uint64 { return reactive.ReadStats().Pruned }},
		{"ui", "items_created_total", "List items rendered by Each.", func() uint64 { return ui.ReadStats().Created }},
		{"ui", "items_reused_total", "List items kept in place by Each.", func() uint64 { return ui.ReadStats().Reused }},
		{"ui", "items_moved_total", "List items moved by Each.", func() uint64 { return ui.ReadStats().Moved }},
		{"ui", "items_removed_total", "List items removed by Each.", func() uint64 { return ui.ReadStats().Removed }},
		{"ui", "bindings_total", "Reactive template bindings created.", func() uint64 { return ui.ReadStats().Bindings }},
		{"ui", "bindings_detached_total", "Reactive bindings disposed after their node left the document.", func() uint64 { return ui.ReadStats().Detached }},
		{"ui", "templates_compiled_total", "Distinct template markups compiled.", func() uint64 { return ui.ReadStats().Templates }},
	}
}

// Register adds the counters to reg under namespace. Registering the same
// counters twice is not an error.
func Register(reg prometheus.Registerer, namespace string) error {
	for _, c := range counters() {
		read := c.read
		collector := prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: c.subsystem,
			Name:      c.name,
			Help:      c.help,
		}, func() float64 { return float64(read()) })

		if err := reg.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if stderrors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}
