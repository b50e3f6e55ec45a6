package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"authapp/internal/errors"
	"authapp/internal/service"
)

// ChatHandler handles the AI chat endpoint.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest represents one chat message.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse carries the assistant reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// Chat godoc
// @Summary Send a message to the AI assistant
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Message"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reply, err := h.chatService.Complete(c.Request().Context(), req.Message)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to generate response",
			Code:  "CHAT_FAILED",
		})
	}

	return c.JSON(http.StatusOK, ChatResponse{Response: reply})
}
