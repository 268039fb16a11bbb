package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics counts the engine's externally meaningful transitions.
type EngineMetrics struct {
	placements  prometheus.Counter
	activations prometheus.Counter
	directPaid  prometheus.Counter
	pairsPaid   prometheus.Counter
}

var (
	engineOnce sync.Once
	engine     *EngineMetrics
)

// Engine returns the process-wide engine metrics, registering them on
// first use.
func Engine() *EngineMetrics {
	engineOnce.Do(func() {
		engine = &EngineMetrics{
			placements: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "valuelife_placements_total",
				Help: "Participants placed into the binary tree.",
			}),
			activations: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "valuelife_activations_total",
				Help: "Participants flipped to active.",
			}),
			directPaid: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "valuelife_direct_bonuses_total",
				Help: "Direct referral bonuses paid to placement parents.",
			}),
			pairsPaid: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "valuelife_pair_bonuses_total",
				Help: "Pairing bonuses paid, one per distinct sibling pair.",
			}),
		}
		prometheus.MustRegister(
			engine.placements,
			engine.activations,
			engine.directPaid,
			engine.pairsPaid,
		)
	})
	return engine
}

func (m *EngineMetrics) PlacementRecorded()   { m.placements.Inc() }
func (m *EngineMetrics) ActivationRecorded()  { m.activations.Inc() }
func (m *EngineMetrics) DirectBonusRecorded() { m.directPaid.Inc() }
func (m *EngineMetrics) PairBonusRecorded()   { m.pairsPaid.Inc() }
