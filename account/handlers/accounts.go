package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/kawerify-tech/flo-orders-app-sub000/account/dal"
	"github.com/kawerify-tech/flo-orders-app-sub000/account/service"
	"github.com/kawerify-tech/flo-orders-app-sub000/common"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/web"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
)

type Accounts struct {
	l   logger.Provider
	svc service.AccountService
}

func NewAccounts(l logger.Provider, conn *connection.Connection) *Accounts {
	svc := service.NewService(l, conn)

	return &Accounts{
		l:   l,
		svc: svc,
	}
}

// Me returns the calling client's account.
func (h *Accounts) Me(ctx *gin.Context) error {
	account, err := h.svc.Get(ctx, ctx.GetString(common.CtxKeys.UID))
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, account, http.StatusOK)
}

// Get returns an account by id.
func (h *Accounts) Get(ctx *gin.Context) error {
	account, err := h.svc.Get(ctx, ctx.Param("id"))
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, account, http.StatusOK)
}

// TopUp credits a client account on behalf of the calling admin.
func (h *Accounts) TopUp(ctx *gin.Context) error {
	var req service.TopUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	req.ClientID = ctx.Param("id")

	if err := h.svc.TopUp(ctx, &req, ctx.GetString(common.CtxKeys.UID)); err != nil {
		return translate(err)
	}

	return web.Respond(ctx, nil, http.StatusOK)
}

// ListTopUps returns an account's credit history.
func (h *Accounts) ListTopUps(ctx *gin.Context) error {
	topUps, err := h.svc.ListTopUps(ctx, ctx.Param("id"))
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, topUps, http.StatusOK)
}

type pumpPriceRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// SetPumpPrice updates the per-account pump price.
func (h *Accounts) SetPumpPrice(ctx *gin.Context) error {
	var req pumpPriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	if err := h.svc.SetPumpPrice(ctx, ctx.Param("id"), req.Price); err != nil {
		return translate(err)
	}

	return web.Respond(ctx, nil, http.StatusOK)
}

// Reconcile recomputes every active account from its event history.
func (h *Accounts) Reconcile(ctx *gin.Context) error {
	reports, err := h.svc.Reconcile(ctx)
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, reports, http.StatusOK)
}

// ReconcileAccount recomputes a single account.
func (h *Accounts) ReconcileAccount(ctx *gin.Context) error {
	report, err := h.svc.ReconcileAccount(ctx, ctx.Param("id"))
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, report, http.StatusOK)
}

func translate(err error) error {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, dal.ErrAccountNotFound):
		return web.NewRequestError(err, http.StatusNotFound)
	case errors.Is(err, dal.ErrInvalidDebitAmount),
		errors.Is(err, dal.ErrInvalidPumpPrice),
		errors.As(err, &validationErrs):
		return web.NewRequestError(err, http.StatusBadRequest)
	default:
		// Unexpected errors keep a generic body; the cause stays in the logs.
		return web.NewRequestError(web.ErrInternalServerError, http.StatusInternalServerError)
	}
}
