package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/cdtdelta/cmdsynth/internal/model"
)

const namespace = "cmdsynth"

// Collector counts generated events. It is safe for concurrent use.
type Collector struct {
	registry *prometheus.Registry

	events  *prometheus.CounterVec
	sudo    prometheus.Counter
	chained prometheus.Counter
	failed  *prometheus.CounterVec
}

// New returns a Collector registered on its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Generated command events by risk level.",
		}, []string{"risk_level"}),
		sudo: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sudo_events_total",
			Help:      "Generated events rendered with a sudo prefix.",
		}),
		chained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chained_events_total",
			Help:      "Generated events with a chained follow-up command.",
		}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failed_events_total",
			Help:      "Generated events with a non-zero exit code.",
		}, []string{"exit_code"}),
	}
	c.registry.MustRegister(c.events, c.sudo, c.chained, c.failed)
	return c
}

// Observe records one event.
func (c *Collector) Observe(ev *model.CommandEvent, chained bool) {
	c.events.WithLabelValues(strconv.Itoa(ev.RiskLevel)).Inc()
	if ev.SudoUsed {
		c.sudo.Inc()
	}
	if chained {
		c.chained.Inc()
	}
	if ev.ExitCode != 0 {
		c.failed.WithLabelValues(strconv.Itoa(ev.ExitCode)).Inc()
	}
}

// WriteTextfile writes the counters in the Prometheus text format, suitable
// for the node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

// Summary is a point-in-time view of the counters.
type Summary struct {
	Total   int64
	ByRisk  map[int]int64
	Sudo    int64
	Chained int64
	Failed  int64
}

// Summary gathers the current counter values.
func (c *Collector) Summary() (Summary, error) {
	s := Summary{ByRisk: make(map[int]int64)}

	families, err := c.registry.Gather()
	if err != nil {
		return s, fmt.Errorf("gathering metrics: %w", err)
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			v := int64(m.GetCounter().GetValue())
			switch mf.GetName() {
			case namespace + "_events_total":
				level, err := strconv.Atoi(labelValue(m, "risk_level"))
				if err != nil {
					return s, fmt.Errorf("parsing risk_level label: %w", err)
				}
				s.ByRisk[level] += v
				s.Total += v
			case namespace + "_sudo_events_total":
				s.Sudo += v
			case namespace + "_chained_events_total":
				s.Chained += v
			case namespace + "_failed_events_total":
				s.Failed += v
			}
		}
	}
	return s, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
