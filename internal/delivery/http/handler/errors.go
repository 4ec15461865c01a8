package handler

import (
	"errors"

	"career-sync/internal/delivery/http/middleware"
	"career-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type errorDetail struct {
	Detail string `json:"detail"`
}

func mapUsecaseError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, usecase.ErrModelNotReady):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Model not ready", nil, err)
	case errors.Is(err, usecase.ErrRetrainInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Retrain already in progress", nil, err)
	case errors.Is(err, usecase.ErrCareerNotFound):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Career not found", errorDetail{Detail: err.Error()}, err)
	case errors.Is(err, usecase.ErrTrendNotFound):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Industry trend not found", errorDetail{Detail: err.Error()}, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "Internal server error", nil, err)
	}
}
