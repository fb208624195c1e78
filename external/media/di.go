package media

import (
	"github.com/nicksboson/CeriNote/internal/config"
	internalmedia "github.com/nicksboson/CeriNote/internal/media"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (internalmedia.Store, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewLocalStore(c.UploadsDir)
	})
}
