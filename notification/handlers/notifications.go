package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kawerify-tech/flo-orders-app-sub000/common"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/web"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
	"github.com/kawerify-tech/flo-orders-app-sub000/notification/dal"
	"github.com/kawerify-tech/flo-orders-app-sub000/notification/service"
)

type Notifications struct {
	l   logger.Provider
	svc service.NotificationService
}

func NewNotifications(l logger.Provider, conn *connection.Connection) *Notifications {
	svc := service.NewService(l, conn)

	return &Notifications{
		l:   l,
		svc: svc,
	}
}

// List returns the calling client's notifications, newest first.
func (h *Notifications) List(ctx *gin.Context) error {
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	notifications, err := h.svc.List(ctx, ctx.GetString(common.CtxKeys.UID), limit)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, notifications, http.StatusOK)
}

// MarkRead flags one notification as read.
func (h *Notifications) MarkRead(ctx *gin.Context) error {
	err := h.svc.MarkRead(ctx, ctx.GetString(common.CtxKeys.UID), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, dal.ErrNotificationNotFound) {
			return web.NewRequestError(err, http.StatusNotFound)
		}

		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, nil, http.StatusOK)
}

// MarkAllRead flags every unread notification as read.
func (h *Notifications) MarkAllRead(ctx *gin.Context) error {
	if err := h.svc.MarkAllRead(ctx, ctx.GetString(common.CtxKeys.UID)); err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, nil, http.StatusOK)
}
