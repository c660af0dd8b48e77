package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kawerify-tech/flo-orders-app-sub000/chat/service"
	"github.com/kawerify-tech/flo-orders-app-sub000/common"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/web"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
)

type Chat struct {
	l   logger.Provider
	svc service.ChatService
}

func NewChat(l logger.Provider, conn *connection.Connection) *Chat {
	svc := service.NewService(l, conn)

	return &Chat{
		l:   l,
		svc: svc,
	}
}

// Service exposes the underlying chat service so background workers can share
// the session table with the handlers.
func (h *Chat) Service() service.ChatService {
	return h.svc
}

// Connect marks the caller online and starts their presence session.
func (h *Chat) Connect(ctx *gin.Context) error {
	if err := h.svc.Establish(ctx, ctx.GetString(common.CtxKeys.UID)); err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, nil, http.StatusOK)
}

// Disconnect ends the caller's presence session.
func (h *Chat) Disconnect(ctx *gin.Context) error {
	if err := h.svc.Terminate(ctx, ctx.GetString(common.CtxKeys.UID)); err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, nil, http.StatusOK)
}

// Presence returns another user's presence record.
func (h *Chat) Presence(ctx *gin.Context) error {
	record, err := h.svc.Presence(ctx, ctx.Param("uid"))
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, record, http.StatusOK)
}

type sendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendMessage posts a message from the caller to the peer in the path.
func (h *Chat) SendMessage(ctx *gin.Context) error {
	var req sendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	msg, err := h.svc.SendMessage(ctx, ctx.GetString(common.CtxKeys.UID), ctx.Param("uid"), req.Text)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, msg, http.StatusCreated)
}

// GetMessages returns the conversation with the peer in the path, marking
// their messages read.
func (h *Chat) GetMessages(ctx *gin.Context) error {
	messages, err := h.svc.GetMessages(ctx, ctx.GetString(common.CtxKeys.UID), ctx.Param("uid"))
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, messages, http.StatusOK)
}
