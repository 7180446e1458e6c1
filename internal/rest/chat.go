package rest

import (
	"context"
	"net/http"
	"time"

	"eduPulse/business/chatbot"
	"eduPulse/domain"
	"eduPulse/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	ChatHandler struct {
		validate    *validator.Validate
		chatService ChatService
		feedback    FeedbackService
	}

	ChatService interface {
		HandleMessage(ctx context.Context, userID uint, message string) (domain.ChatResponse, string, error)
		ClearHistory(ctx context.Context, userID uint) error
	}

	FeedbackService interface {
		RecordFeedback(ctx context.Context, interactionID string, satisfaction *int, helpful *bool) error
	}

	MessageRequest struct {
		Message string `json:"message" validate:"required"`
	}

	MessageResponse struct {
		InteractionID string              `json:"interaction_id"`
		Response      domain.ChatResponse `json:"response"`
	}

	ChatFeedbackRequest struct {
		InteractionID string `json:"interaction_id" validate:"required,uuid"`
		Satisfaction  *int   `json:"satisfaction" validate:"omitempty,min=1,max=5"`
		Helpful       *bool  `json:"helpful"`
	}
)

func NewChatHandler(chatService ChatService, feedback FeedbackService) *ChatHandler {
	return &ChatHandler{
		validate:    validator.New(),
		chatService: chatService,
		feedback:    feedback,
	}
}

func (h *ChatHandler) Message(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx := context.WithValue(c.Request().Context(), chatbot.TraceIDKey, uuid.NewString())

	start := time.Now()
	resp, interactionID, err := h.chatService.HandleMessage(ctx, userID, req.Message)
	metrics.ChatMessageLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(MessageResponse{
		InteractionID: interactionID,
		Response:      resp,
	}))
}

func (h *ChatHandler) ClearHistory(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	if err := h.chatService.ClearHistory(c.Request().Context(), userID); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("conversation history cleared"))
}

func (h *ChatHandler) Feedback(c echo.Context) error {
	var req ChatFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.feedback.RecordFeedback(c.Request().Context(), req.InteractionID, req.Satisfaction, req.Helpful); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("feedback recorded"))
}
