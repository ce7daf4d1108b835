package world

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics инкапсулирует Prometheus-метрики мира.
// Nil-значение допустимо: все методы ничего не делают.
type Metrics struct {
	voxels             prometheus.Gauge
	placed             prometheus.Counter
	broken             prometheus.Counter
	declined           *prometheus.CounterVec
	collaboratorErrors *prometheus.CounterVec
}

// NewMetrics создаёт метрики и регистрирует их в reg (если reg != nil)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		voxels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel_world",
			Name:      "voxels",
			Help:      "Текущее количество вокселей в мире.",
		}),
		placed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel_world",
			Name:      "placed_total",
			Help:      "Блоков, установленных игроком.",
		}),
		broken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel_world",
			Name:      "broken_total",
			Help:      "Блоков, разрушенных игроком.",
		}),
		declined: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxel_world",
			Name:      "place_declined_total",
			Help:      "Отклонённые попытки установки блока.",
		}, []string{"reason"}),
		collaboratorErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxel_world",
			Name:      "collaborator_errors_total",
			Help:      "Ошибки внешних коллабораторов (сцена, звук, таймер).",
		}, []string{"collaborator"}),
	}

	if reg != nil {
		reg.MustRegister(m.voxels, m.placed, m.broken, m.declined, m.collaboratorErrors)
	}
	return m
}

func (m *Metrics) setVoxels(n int) {
	if m != nil {
		m.voxels.Set(float64(n))
	}
}

func (m *Metrics) incPlaced() {
	if m != nil {
		m.placed.Inc()
	}
}

func (m *Metrics) incBroken() {
	if m != nil {
		m.broken.Inc()
	}
}

func (m *Metrics) incDeclined(reason string) {
	if m != nil {
		m.declined.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) incCollaboratorError(collaborator string) {
	if m != nil {
		m.collaboratorErrors.WithLabelValues(collaborator).Inc()
	}
}
