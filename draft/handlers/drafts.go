package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/kawerify-tech/flo-orders-app-sub000/common"
	"github.com/kawerify-tech/flo-orders-app-sub000/draft/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/draft/service"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/web"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
	txdomain "github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
)

type Drafts struct {
	l   logger.Provider
	svc service.DraftService
}

func NewDrafts(l logger.Provider, conn *connection.Connection) *Drafts {
	svc := service.NewService(l, conn)

	return &Drafts{
		l:   l,
		svc: svc,
	}
}

// Save creates or updates a draft for the calling client.
func (h *Drafts) Save(ctx *gin.Context) error {
	var req service.SaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	req.ClientID = ctx.GetString(common.CtxKeys.UID)

	draft, err := h.svc.SaveDraft(ctx, &req)
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, draft, http.StatusOK)
}

// List returns the calling client's drafts.
func (h *Drafts) List(ctx *gin.Context) error {
	drafts, err := h.svc.ListDrafts(ctx, ctx.GetString(common.CtxKeys.UID))
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, drafts, http.StatusOK)
}

// Watch streams the calling client's draft list as server-sent events until
// the client disconnects.
func (h *Drafts) Watch(ctx *gin.Context) error {
	updates, err := h.svc.WatchDrafts(ctx.Request.Context(), ctx.GetString(common.CtxKeys.UID))
	if err != nil {
		return translate(err)
	}

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")

	for {
		select {
		case drafts, ok := <-updates:
			if !ok {
				return nil
			}

			ctx.SSEvent("drafts", drafts)
			ctx.Writer.Flush()
		case <-ctx.Request.Context().Done():
			return nil
		}
	}
}

// Delete removes a draft. Deleting an unknown draft succeeds.
func (h *Drafts) Delete(ctx *gin.Context) error {
	if err := h.svc.DeleteDraft(ctx, ctx.GetString(common.CtxKeys.UID), ctx.Param("id")); err != nil {
		return translate(err)
	}

	return web.Respond(ctx, nil, http.StatusOK)
}

// Promote finalizes a draft into a pending transaction.
func (h *Drafts) Promote(ctx *gin.Context) error {
	entry, err := h.svc.PromoteDraft(ctx, ctx.GetString(common.CtxKeys.UID), ctx.Param("id"))
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, entry, http.StatusCreated)
}

func translate(err error) error {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, domain.ErrDraftNotFound):
		return web.NewRequestError(err, http.StatusNotFound)
	case errors.Is(err, txdomain.ErrInvalidAmount),
		errors.Is(err, txdomain.ErrPumpPriceUnavailable),
		txdomain.IsInsufficientFunds(err),
		errors.As(err, &validationErrs):
		return web.NewRequestError(err, http.StatusBadRequest)
	default:
		// Unexpected errors keep a generic body; the cause stays in the logs.
		return web.NewRequestError(web.ErrInternalServerError, http.StatusInternalServerError)
	}
}
