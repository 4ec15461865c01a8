package routes

import "github.com/gofiber/fiber/v3"

func RegisterV1(r fiber.Router, reg *Registry) {
	if r == nil || reg == nil {
		return
	}

	if reg.profile != nil {
		reg.profile.RegisterRoutes(r)
	}
	if reg.model != nil {
		reg.model.RegisterRoutes(r)
	}
}
