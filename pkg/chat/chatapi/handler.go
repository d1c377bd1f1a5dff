package chatapi

import (
	"github.com/aidul23/agent-mem/pkg/chat"
	"github.com/aidul23/agent-mem/pkg/chat/chatsrv"
	"github.com/aidul23/agent-mem/pkg/httpx"
	"github.com/gofiber/fiber/v2"
)

type ChatHandlers struct {
	service *chatsrv.ChatService
}

func NewChatHandlers(service *chatsrv.ChatService) *ChatHandlers {
	return &ChatHandlers{service: service}
}

func (h *ChatHandlers) RegisterRoutes(router fiber.Router) {
	router.Post("/chat", h.Chat)
}

// Chat runs one agent turn for the user
func (h *ChatHandlers) Chat(c *fiber.Ctx) error {
	var req chat.Request
	if err := httpx.ParseJSON(c, &req); err != nil {
		return err
	}

	reply, err := h.service.Chat(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(reply)
}
