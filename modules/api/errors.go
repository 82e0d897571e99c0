package api

import (
	"errors"
	"log"
	"strings"

	"github.com/Dimaschel/FullStack/domain/schedule"
	"github.com/gofiber/fiber/v2"
)

var scheduleStatuses = []struct {
	kind   error
	status int
}{
	{schedule.ErrNotFound, fiber.StatusNotFound},
	{schedule.ErrForbidden, fiber.StatusForbidden},
	{schedule.ErrInvalidState, fiber.StatusConflict},
	{schedule.ErrConflict, fiber.StatusConflict},
	{schedule.ErrValidation, fiber.StatusBadRequest},
}

// scheduleError writes a lifecycle failure. Failures outside the lifecycle
// taxonomy are logged and hidden behind a 500.
func scheduleError(c *fiber.Ctx, err error) error {
	for _, s := range scheduleStatuses {
		if errors.Is(err, s.kind) {
			return c.Status(s.status).JSON(ErrorResponse{
				Error:   schedule.Code(err),
				Message: err.Error(),
			})
		}
	}
	return internalError(c, err)
}

// knownError maps a message fragment of a service error to a response.
// Errors from auth and profile cross the service container as text.
type knownError struct {
	fragment string
	status   int
	code     string
	message  string
}

var authErrors = []knownError{
	{"invalid email or password", fiber.StatusUnauthorized, "unauthorized", "Invalid email or password"},
	{"email is already in use", fiber.StatusConflict, "conflict", "Email is already in use"},
	{"phone number is already in use", fiber.StatusConflict, "conflict", "Phone number is already in use"},
	{"invalid email format", fiber.StatusBadRequest, "bad_request", "Invalid email format"},
	{"invalid phone number", fiber.StatusBadRequest, "bad_request", "Invalid phone number"},
	{"role must be", fiber.StatusBadRequest, "bad_request", "Role must be NEEDY or HELPER"},
	{"password must be at least", fiber.StatusBadRequest, "bad_request", "Password must be at least 8 characters"},
	{"password must be at most", fiber.StatusBadRequest, "bad_request", "Password must be at most 72 characters"},
	{"user not found", fiber.StatusNotFound, "not_found", "User not found"},
}

var profileErrors = []knownError{
	{"profile already exists", fiber.StatusConflict, "conflict", "Profile already exists for this user"},
	{"profile not found", fiber.StatusNotFound, "not_found", "Profile not found"},
	{"name is required", fiber.StatusBadRequest, "bad_request", "Name is required"},
	{"age must be between", fiber.StatusBadRequest, "bad_request", "Age must be between 0 and 150"},
}

func serviceError(c *fiber.Ctx, err error, known []knownError) error {
	errStr := err.Error()
	for _, k := range known {
		if strings.Contains(errStr, k.fragment) {
			return c.Status(k.status).JSON(ErrorResponse{
				Error:   k.code,
				Message: k.message,
			})
		}
	}
	return internalError(c, err)
}

func internalError(c *fiber.Ctx, err error) error {
	log.Printf("[api] Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// customErrorHandler handles errors returned by Fiber itself.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
