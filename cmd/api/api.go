package api

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	accountHandlers "github.com/kawerify-tech/flo-orders-app-sub000/account/handlers"
	chatHandlers "github.com/kawerify-tech/flo-orders-app-sub000/chat/handlers"
	draftHandlers "github.com/kawerify-tech/flo-orders-app-sub000/draft/handlers"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/mid"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/web"
	iamDomain "github.com/kawerify-tech/flo-orders-app-sub000/iam/domain"
	iamService "github.com/kawerify-tech/flo-orders-app-sub000/iam/service"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
	notificationHandlers "github.com/kawerify-tech/flo-orders-app-sub000/notification/handlers"
	transactionHandlers "github.com/kawerify-tech/flo-orders-app-sub000/transaction/handlers"
)

// API constructs an api with the needed functionality.
type API struct {
	shutdown chan os.Signal
	log      *logger.Logging
	conn     *connection.Connection

	sweeperCancel context.CancelFunc
}

func NewAPI(shutdown chan os.Signal, logging *logger.Logging, conn *connection.Connection) *API {
	return &API{
		shutdown: shutdown,
		log:      logging,
		conn:     conn,
	}
}

// Build builds the api endpoints with the needed middlewares, and returns http.Handler interface.
func (a *API) Build() http.Handler {
	loggerProvider := logger.FromContext

	app := web.NewApp(a.shutdown, a.conn, mid.Logger(), mid.Errors(), mid.Panics())

	iam := iamService.NewService(loggerProvider, a.conn)

	transactions := transactionHandlers.NewTransactions(loggerProvider, a.conn)
	drafts := draftHandlers.NewDrafts(loggerProvider, a.conn)
	accounts := accountHandlers.NewAccounts(loggerProvider, a.conn)
	notifications := notificationHandlers.NewNotifications(loggerProvider, a.conn)
	chat := chatHandlers.NewChat(loggerProvider, a.conn)

	// The presence sweeper runs for the lifetime of the api.
	sweeperCtx, cancel := context.WithCancel(context.Background())
	a.sweeperCancel = cancel

	go chat.Service().RunSweeper(sweeperCtx)

	app.Get("/health", func(ctx *gin.Context) error {
		return web.Respond(ctx, nil, http.StatusOK)
	})

	authed := web.NewGroup(app, "", mid.Authenticate(iam))

	clientGroup := authed.NewSubgroup("", mid.RequireRole(iamDomain.RoleClient))
	{
		clientGroup.Post("/quotes", transactions.Quote)
		clientGroup.Post("/transactions", transactions.Submit)
		clientGroup.Get("/transactions", transactions.ListMine)

		clientGroup.Post("/drafts", drafts.Save)
		clientGroup.Get("/drafts", drafts.List)
		clientGroup.Get("/drafts/watch", drafts.Watch)
		clientGroup.Delete("/drafts/:id", drafts.Delete)
		clientGroup.Post("/drafts/:id/promote", drafts.Promote)

		clientGroup.Get("/me", accounts.Me)
		clientGroup.Get("/notifications", notifications.List)
		clientGroup.Post("/notifications/read", notifications.MarkAllRead)
		clientGroup.Post("/notifications/:id/read", notifications.MarkRead)
	}

	staffGroup := authed.NewSubgroup("", mid.RequireRole(iamDomain.RoleAdmin, iamDomain.RoleAttendant))
	{
		staffGroup.Get("/transactions/pending", transactions.ListPending)
		staffGroup.Get("/transactions/:id", transactions.Get)
		staffGroup.Post("/transactions/:id/approve", transactions.Approve)
		staffGroup.Post("/transactions/:id/reject", transactions.Reject)
	}

	adminGroup := authed.NewSubgroup("/admin", mid.RequireRole(iamDomain.RoleAdmin))
	{
		adminGroup.Get("/accounts/:id", accounts.Get)
		adminGroup.Post("/accounts/:id/topup", accounts.TopUp)
		adminGroup.Get("/accounts/:id/topups", accounts.ListTopUps)
		adminGroup.Post("/accounts/:id/pump-price", accounts.SetPumpPrice)
		adminGroup.Post("/reconcile", accounts.Reconcile)
		adminGroup.Post("/reconcile/:id", accounts.ReconcileAccount)
	}

	chatGroup := authed.NewSubgroup("/chat")
	{
		chatGroup.Post("/connect", chat.Connect)
		chatGroup.Post("/disconnect", chat.Disconnect)
		chatGroup.Get("/presence/:uid", chat.Presence)
		chatGroup.Post("/with/:uid/messages", chat.SendMessage)
		chatGroup.Get("/with/:uid/messages", chat.GetMessages)
	}

	return app
}

// Close stops the background workers started by Build.
func (a *API) Close() {
	if a.sweeperCancel != nil {
		a.sweeperCancel()
	}
}
