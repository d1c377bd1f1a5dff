package profileapi

import (
	"github.com/aidul23/agent-mem/pkg/httpx"
	"github.com/aidul23/agent-mem/pkg/profile/profilesrv"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandlers serves the consent routes
type ProfileHandlers struct {
	service *profilesrv.ProfileService
}

func NewProfileHandlers(service *profilesrv.ProfileService) *ProfileHandlers {
	return &ProfileHandlers{service: service}
}

func (h *ProfileHandlers) RegisterRoutes(router fiber.Router) {
	router.Post("/consent", h.SetConsent)
	router.Get("/user/:user_id/status", h.GetStatus)
}

type ConsentRequest struct {
	UserID string `json:"user_id"`
	Allow  bool   `json:"allow"`
}

type ConsentResponse struct {
	Status      string `json:"status"`
	AllowMemory bool   `json:"allow_memory"`
}

type StatusResponse struct {
	UserID      string `json:"user_id"`
	AllowMemory bool   `json:"allow_memory"`
}

// SetConsent records whether the user allows personal memory
func (h *ProfileHandlers) SetConsent(c *fiber.Ctx) error {
	var req ConsentRequest
	if err := httpx.ParseJSON(c, &req); err != nil {
		return err
	}

	p, err := h.service.SetConsent(c.UserContext(), req.UserID, req.Allow)
	if err != nil {
		return err
	}

	return c.JSON(ConsentResponse{
		Status:      "ok",
		AllowMemory: p.AllowMemory,
	})
}

func (h *ProfileHandlers) GetStatus(c *fiber.Ctx) error {
	p, err := h.service.GetOrCreate(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return err
	}

	return c.JSON(StatusResponse{
		UserID:      p.UserID.String(),
		AllowMemory: p.AllowMemory,
	})
}
