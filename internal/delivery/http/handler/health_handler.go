package handler

import (
	"career-sync/internal/pkg/response"
	"career-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	store *usecase.SnapshotStore
}

func NewHealthHandler(store *usecase.SnapshotStore) *HealthHandler {
	return &HealthHandler{store: store}
}

type healthData struct {
	Status     string `json:"status"`
	ModelReady bool   `json:"model_ready"`
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Live)
	r.Get("/health/ready", h.Ready)
}

func (h *HealthHandler) Live(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, healthData{Status: "ok", ModelReady: h.ready()})
}

func (h *HealthHandler) Ready(c fiber.Ctx) error {
	if !h.ready() {
		return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, healthData{Status: "starting"})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, healthData{Status: "ok", ModelReady: true})
}

func (h *HealthHandler) ready() bool {
	return h != nil && h.store.Load() != nil
}
