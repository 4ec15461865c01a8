package routes

import (
	"career-sync/internal/delivery/http/handler"
	"career-sync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health  *handler.HealthHandler
	profile *handler.ProfileHandler
	model   *handler.ModelHandler
	ws      *ws.Handler
}

type Handlers struct {
	Health  *handler.HealthHandler
	Profile *handler.ProfileHandler
	Model   *handler.ModelHandler
	WS      *ws.Handler
}

func NewRegistry(h Handlers) *Registry {
	return &Registry{health: h.Health, profile: h.Profile, model: h.Model, ws: h.WS}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerCompat(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerCompat(app *fiber.App) {
	if r.profile != nil {
		r.profile.RegisterCompatRoutes(app)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws != nil {
		r.ws.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r)
}
