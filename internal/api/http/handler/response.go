package handler

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Every success response carries the same envelope so clients can branch on
// a single boolean.

func ok(c fiber.Ctx, data any, msg string) error {
	return c.JSON(fiber.Map{"success": true, "data": data, "message": msg})
}

func created(c fiber.Ctx, data any, msg string) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data, "message": msg})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": msg})
}

func unauthorized(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": msg})
}

func notFound(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": msg})
}

func internalError(c fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "internal server error"})
}

// parseObjectID reads a path parameter as a Mongo object id.
func parseObjectID(c fiber.Ctx, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
