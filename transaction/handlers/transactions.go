package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/kawerify-tech/flo-orders-app-sub000/common"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/web"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/service"
)

type Transactions struct {
	l   logger.Provider
	svc service.TransactionService
}

func NewTransactions(l logger.Provider, conn *connection.Connection) *Transactions {
	svc := service.NewService(l, conn)

	return &Transactions{
		l:   l,
		svc: svc,
	}
}

type quoteRequest struct {
	Amount float64 `json:"amount"`
}

type processRequest struct {
	ActorName string `json:"actorName"`
}

// Quote prices an amount for the calling client without creating anything.
func (h *Transactions) Quote(ctx *gin.Context) error {
	var req quoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	clientID := ctx.GetString(common.CtxKeys.UID)

	quote, err := h.svc.Quote(ctx, clientID, req.Amount)
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, quote, http.StatusOK)
}

// Submit creates a transaction for the calling client.
func (h *Transactions) Submit(ctx *gin.Context) error {
	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	req.ClientID = ctx.GetString(common.CtxKeys.UID)

	entry, err := h.svc.Submit(ctx, &req)
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, entry, http.StatusCreated)
}

// Approve completes a pending transaction on behalf of the calling attendant.
func (h *Transactions) Approve(ctx *gin.Context) error {
	var req processRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	entry, err := h.svc.Approve(ctx, ctx.Param("id"), ctx.GetString(common.CtxKeys.UID), req.ActorName)
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, entry, http.StatusOK)
}

// Reject declines a pending transaction.
func (h *Transactions) Reject(ctx *gin.Context) error {
	var req processRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	entry, err := h.svc.Reject(ctx, ctx.Param("id"), ctx.GetString(common.CtxKeys.UID), req.ActorName)
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, entry, http.StatusOK)
}

// Get returns a single ledger entry.
func (h *Transactions) Get(ctx *gin.Context) error {
	entry, err := h.svc.Get(ctx, ctx.Param("id"))
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, entry, http.StatusOK)
}

// ListMine returns the calling client's transaction history.
func (h *Transactions) ListMine(ctx *gin.Context) error {
	entries, err := h.svc.ListByClient(ctx, ctx.GetString(common.CtxKeys.UID), 0)
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, entries, http.StatusOK)
}

// ListPending returns the attendant approval queue.
func (h *Transactions) ListPending(ctx *gin.Context) error {
	entries, err := h.svc.ListPending(ctx)
	if err != nil {
		return translate(err)
	}

	return web.Respond(ctx, entries, http.StatusOK)
}

func translate(err error) error {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return web.NewRequestError(err, http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return web.NewRequestError(err, http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrPumpPriceUnavailable),
		domain.IsInsufficientFunds(err),
		errors.As(err, &validationErrs):
		return web.NewRequestError(err, http.StatusBadRequest)
	default:
		// Unexpected errors keep a generic body; the cause stays in the logs.
		return web.NewRequestError(web.ErrInternalServerError, http.StatusInternalServerError)
	}
}
