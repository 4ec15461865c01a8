package handler

import (
	"career-sync/internal/delivery/http/dto"
	"career-sync/internal/pkg/response"
	"career-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

type ModelHandler struct {
	uc  usecase.ModelUsecase
	log zerolog.Logger
}

func NewModelHandler(uc usecase.ModelUsecase, logger zerolog.Logger) *ModelHandler {
	return &ModelHandler{uc: uc, log: logger}
}

func (h *ModelHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/model", h.GetStatus)
	r.Post("/model/retrain", h.Retrain)
}

func (h *ModelHandler) GetStatus(c fiber.Ctx) error {
	st, err := h.uc.Status(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewModelStatusResponse(st))
}

func (h *ModelHandler) Retrain(c fiber.Ctx) error {
	info, err := h.uc.Retrain(c.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("retrain request failed")
		return mapUsecaseError(err)
	}
	h.log.Info().Str("snapshot_id", info.ID.String()).Msg("retrain request completed")
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RetrainResponseData{Snapshot: info})
}
