package groq

import (
	"github.com/nicksboson/CeriNote/internal/clinician"
	"github.com/nicksboson/CeriNote/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*ClinicianClient, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewClinicianClient(c), nil
	})
	do.Provide(injector, func(i do.Injector) (clinician.Structurer, error) {
		return do.MustInvoke[*ClinicianClient](i), nil
	})
	do.Provide(injector, func(i do.Injector) (clinician.ReportWriter, error) {
		return do.MustInvoke[*ClinicianClient](i), nil
	})
	do.Provide(injector, func(i do.Injector) (clinician.SOAPWriter, error) {
		return do.MustInvoke[*ClinicianClient](i), nil
	})
	do.Provide(injector, func(i do.Injector) (clinician.Coder, error) {
		return do.MustInvoke[*ClinicianClient](i), nil
	})
	do.Provide(injector, func(i do.Injector) (clinician.ScaleEstimator, error) {
		return do.MustInvoke[*ClinicianClient](i), nil
	})
}
