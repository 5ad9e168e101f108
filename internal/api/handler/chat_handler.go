package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staysmart/hospitality-platform/internal/core/ports"
)

// ChatHandler handles the guest-facing chat endpoint. Classification and any
// booking side effects happen in the chat service; the handler only shapes
// the transport.
type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Chat handles POST /v1/chat.
//
// @Summary      Send a chat message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      chatRequest  true  "Chat message"
// @Success      200   {object}  chatResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reply, err := h.service.Reply(c.Request().Context(), ports.ChatInput{
		PropertyID:   req.PropertyID,
		Message:      req.Message,
		GuestName:    req.GuestName,
		GuestContact: req.GuestContact,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}
