package httpapi

import (
	"github.com/nicksboson/CeriNote/internal/audit"
	"github.com/nicksboson/CeriNote/internal/clinician"
	"github.com/nicksboson/CeriNote/internal/config"
	"github.com/nicksboson/CeriNote/internal/consent"
	"github.com/nicksboson/CeriNote/internal/media"
	"github.com/nicksboson/CeriNote/internal/metrics"
	"github.com/nicksboson/CeriNote/internal/pipeline"
	"github.com/nicksboson/CeriNote/internal/retention"
	"github.com/nicksboson/CeriNote/internal/risk"
	"github.com/nicksboson/CeriNote/internal/session"
	"github.com/nicksboson/CeriNote/internal/transcriber"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/do/v2"
)

// RegisterDI wires the pipeline orchestrator, its supporting domain
// services and the HTTP server itself.
func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*prometheus.Registry, error) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		return reg, nil
	})

	do.Provide(injector, func(i do.Injector) (*metrics.Metrics, error) {
		return metrics.NewMetrics(do.MustInvoke[*prometheus.Registry](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*risk.Scanner, error) {
		return risk.NewScanner(), nil
	})

	do.Provide(injector, func(i do.Injector) (*retention.Policy, error) {
		c := do.MustInvoke[*config.Config](i)
		return retention.NewPolicy(
			do.MustInvoke[session.Store](i),
			do.MustInvoke[media.Store](i),
			do.MustInvoke[audit.Log](i),
			do.MustInvoke[*metrics.Metrics](i),
			c.RetentionDays,
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*pipeline.Orchestrator, error) {
		c := do.MustInvoke[*config.Config](i)
		return pipeline.NewOrchestrator(c, pipeline.Deps{
			Sessions:    do.MustInvoke[session.Store](i),
			Media:       do.MustInvoke[media.Store](i),
			Transcriber: do.MustInvoke[transcriber.Transcriber](i),
			Structurer:  do.MustInvoke[clinician.Structurer](i),
			Reporter:    do.MustInvoke[clinician.ReportWriter](i),
			SOAPWriter:  do.MustInvoke[clinician.SOAPWriter](i),
			Coder:       do.MustInvoke[clinician.Coder](i),
			Scales:      do.MustInvoke[clinician.ScaleEstimator](i),
			Scanner:     do.MustInvoke[*risk.Scanner](i),
			Retention:   do.MustInvoke[*retention.Policy](i),
			Audit:       do.MustInvoke[audit.Log](i),
			Consents:    do.MustInvoke[consent.Ledger](i),
			Metrics:     do.MustInvoke[*metrics.Metrics](i),
		}), nil
	})

	do.Provide(injector, func(i do.Injector) (*Server, error) {
		return NewServer(
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*pipeline.Orchestrator](i),
			do.MustInvoke[*risk.Scanner](i),
			do.MustInvoke[audit.Log](i),
			do.MustInvoke[consent.Ledger](i),
			do.MustInvoke[*retention.Policy](i),
			do.MustInvoke[*prometheus.Registry](i),
		), nil
	})
}
