package handler

import (
	"time"

	"career-sync/internal/delivery/http/dto"
	"career-sync/internal/delivery/http/middleware"
	"career-sync/internal/domain/career"
	"career-sync/internal/pkg/response"
	"career-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

type ProfileHandler struct {
	uc  usecase.RecommendationUsecase
	log zerolog.Logger
}

func NewProfileHandler(uc usecase.RecommendationUsecase, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{uc: uc, log: logger}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/profile/analyze", h.Analyze)
}

// RegisterCompatRoutes mounts the unversioned endpoint whose success body is the bare
// recommendation object.
func (h *ProfileHandler) RegisterCompatRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/analyze_profile", h.AnalyzeCompat)
}

func (h *ProfileHandler) Analyze(c fiber.Ctx) error {
	rec, err := h.analyze(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, rec)
}

func (h *ProfileHandler) AnalyzeCompat(c fiber.Ctx) error {
	rec, err := h.analyze(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(rec)
}

func (h *ProfileHandler) analyze(c fiber.Ctx) (career.Recommendation, error) {
	start := time.Now()

	var req dto.AnalyzeProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return career.Recommendation{}, middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid request body", nil, err)
	}
	if errs := req.Validate(); len(errs) > 0 {
		return career.Recommendation{}, middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed", errs, nil)
	}

	rec, err := h.uc.AnalyzeProfile(c.Context(), req.ToProfile())
	if err != nil {
		h.log.Debug().Err(err).Str("path", c.Path()).Dur("duration", time.Since(start)).Msg("analyze profile failed")
		return career.Recommendation{}, mapUsecaseError(err)
	}

	top := ""
	if len(rec.RecommendedCareers) > 0 {
		top = rec.RecommendedCareers[0]
	}
	h.log.Debug().
		Int("skills", len(*req.Skills)).
		Str("top_career", top).
		Dur("duration", time.Since(start)).
		Msg("profile analyzed")
	return rec, nil
}
