package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector — счётчики расчётов и отправок партнёру.
type Collector struct {
	quotes      *prometheus.CounterVec
	submissions *prometheus.CounterVec
}

// New регистрирует счётчики в reg (обычно prometheus.DefaultRegisterer,
// тогда они видны на /metrics).
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interio",
			Name:      "quotes_total",
			Help:      "Treatment price calculations by family and outcome.",
		}, []string{"family", "outcome"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interio",
			Name:      "partner_submissions_total",
			Help:      "Order groups sent to the manufacturing partner.",
		}, []string{"result"}),
	}
	reg.MustRegister(c.quotes, c.submissions)
	return c
}

func (c *Collector) QuoteCalculated(family, outcome string) {
	if family == "" {
		family = "fabric"
	}
	c.quotes.WithLabelValues(family, outcome).Inc()
}

func (c *Collector) GroupSubmitted(ok bool) {
	res := "failed"
	if ok {
		res = "ok"
	}
	c.submissions.WithLabelValues(res).Inc()
}
