package api

import (
	"errors"
	"log"

	"github.com/Dimaschel/FullStack/modules/auth"
	"github.com/Dimaschel/FullStack/modules/profile"
	"github.com/Dimaschel/FullStack/modules/schedule"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth      auth.AuthPort
	schedules schedule.SchedulePort
	profiles  profile.ProfilePort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, schedules schedule.SchedulePort, profiles profile.ProfilePort) *Handlers {
	return &Handlers{
		auth:      authPort,
		schedules: schedules,
		profiles:  profiles,
	}
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" || req.Number == "" || req.Role == "" {
		return badRequest(c, "Email, number, role and password are required")
	}

	resp, err := h.auth.Register(c.UserContext(), &auth.RegisterRequest{
		Email:    req.Email,
		Number:   req.Number,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return serviceError(c, err, authErrors)
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:        resp.ID,
		Email:     resp.Email,
		Number:    resp.Number,
		Role:      resp.Role,
		CreatedAt: resp.CreatedAt,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	resp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return serviceError(c, err, authErrors)
	}
	return c.JSON(toTokenResponse(resp))
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	resp, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return unauthorized(c, "Invalid or expired refresh token")
	}
	return c.JSON(toTokenResponse(resp))
}

// Me returns the authenticated user and their profile.
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	u, err := h.auth.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return serviceError(c, err, authErrors)
	}

	resp := MeResponse{UserResponse: UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Number:    u.Number,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}}
	p, err := h.profiles.GetProfile(c.UserContext(), u.ID)
	switch {
	case err == nil:
		resp.Profile = p
	case !errors.Is(err, profile.ErrNotFound):
		log.Printf("[api] Failed to load profile for %s: %v", u.ID, err)
	}
	return c.JSON(resp)
}

// GetUser returns any user by id. Admin only.
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	u, err := h.auth.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return serviceError(c, err, authErrors)
	}
	return c.JSON(UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Number:    u.Number,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	})
}

// DeleteUser removes a user and their profile. Admin only. Users still
// referenced by a schedule are kept so schedule views stay resolvable.
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	views, err := h.schedules.List(c.UserContext())
	if err != nil {
		return scheduleError(c, err)
	}
	for _, v := range views {
		if v.OwnerID == id || (v.ResponderID != nil && *v.ResponderID == id) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
				Error:   "conflict",
				Message: "User is still referenced by schedule " + v.ID,
			})
		}
	}

	if err := h.auth.DeleteUser(c.UserContext(), id); err != nil {
		return serviceError(c, err, authErrors)
	}
	if err := h.profiles.DeleteProfile(c.UserContext(), id); err != nil && !errors.Is(err, profile.ErrNotFound) {
		log.Printf("[api] Failed to delete profile of user %s: %v", id, err)
	}
	return c.JSON(fiber.Map{"id": id, "message": "user deleted"})
}

// ListSchedules handles GET /schedules.
func (h *Handlers) ListSchedules(c *fiber.Ctx) error {
	views, err := h.schedules.List(c.UserContext())
	if err != nil {
		return scheduleError(c, err)
	}
	return c.JSON(fiber.Map{
		"schedules": views,
		"total":     len(views),
	})
}

// GetSchedule handles GET /schedules/:id.
func (h *Handlers) GetSchedule(c *fiber.Ctx) error {
	v, err := h.schedules.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return scheduleError(c, err)
	}
	return c.JSON(v)
}

// CreateSchedule handles POST /schedules.
func (h *Handlers) CreateSchedule(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	confirmation, err := h.schedules.Create(c.UserContext(), actor, req.Description, req.ScheduledAt)
	if err != nil {
		return scheduleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(confirmation)
}

// Reschedule handles PATCH /schedules/:id/date.
func (h *Handlers) Reschedule(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req RescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	confirmation, err := h.schedules.Reschedule(c.UserContext(), c.Params("id"), actor, req.ScheduledAt)
	if err != nil {
		return scheduleError(c, err)
	}
	return c.JSON(confirmation)
}

// DeleteSchedule handles DELETE /schedules/:id.
func (h *Handlers) DeleteSchedule(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	confirmation, err := h.schedules.Delete(c.UserContext(), c.Params("id"), actor)
	if err != nil {
		return scheduleError(c, err)
	}
	return c.JSON(confirmation)
}

// RateSchedule handles PATCH /schedules/:id/rating.
func (h *Handlers) RateSchedule(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	confirmation, err := h.schedules.Rate(c.UserContext(), c.Params("id"), actor, req.Value)
	if err != nil {
		return scheduleError(c, err)
	}
	return c.JSON(confirmation)
}

// SetScheduleStatus handles PATCH /schedules/:id/status.
func (h *Handlers) SetScheduleStatus(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	confirmation, err := h.schedules.SetStatus(c.UserContext(), c.Params("id"), actor, req.Status)
	if err != nil {
		return scheduleError(c, err)
	}
	return c.JSON(confirmation)
}

// ClaimSchedule handles PATCH /schedules/:id/claim.
func (h *Handlers) ClaimSchedule(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	confirmation, err := h.schedules.Claim(c.UserContext(), c.Params("id"), actor)
	if err != nil {
		return scheduleError(c, err)
	}
	return c.JSON(confirmation)
}

// ReleaseSchedule handles PATCH /schedules/:id/release.
func (h *Handlers) ReleaseSchedule(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	confirmation, err := h.schedules.Release(c.UserContext(), c.Params("id"), actor)
	if err != nil {
		return scheduleError(c, err)
	}
	return c.JSON(confirmation)
}

// CreateProfile handles POST /profiles for the current user.
func (h *Handlers) CreateProfile(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.profiles.CreateProfile(c.UserContext(), &profile.CreateProfileRequest{
		UserID: claims.UserID,
		Name:   req.Name,
		Age:    req.Age,
	})
	if err != nil {
		return serviceError(c, err, profileErrors)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListProfiles handles GET /profiles.
func (h *Handlers) ListProfiles(c *fiber.Ctx) error {
	resp, err := h.profiles.ListProfiles(c.UserContext())
	if err != nil {
		return serviceError(c, err, profileErrors)
	}
	return c.JSON(resp)
}

// GetProfile handles GET /profiles/:userId.
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	resp, err := h.profiles.GetProfile(c.UserContext(), c.Params("userId"))
	if err != nil {
		return serviceError(c, err, profileErrors)
	}
	return c.JSON(resp)
}

func toTokenResponse(resp *auth.LoginResponse) TokenResponse {
	return TokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
		Role:         resp.Role,
	}
}
