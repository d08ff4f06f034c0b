package monitoring

import (
	"github.com/akeren/creatorchain/config/router"
	"github.com/akeren/creatorchain/internal/views"
	"gorm.io/gorm"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type Dependencies struct {
	DB      *gorm.DB
	Cache   Cache
	Views   views.Store
	Breaker Breaker
}

type DefaultMonitoringControllerFactory struct {
	deps Dependencies
}

func NewMonitoringControllerFactory(deps Dependencies) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{deps: deps}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.deps.DB, f.deps.Cache, f.deps.Views, f.deps.Breaker)
}
