package service

import (
	"context"

	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/iam/dal"
	"github.com/kawerify-tech/flo-orders-app-sub000/iam/dal/iface"
	"github.com/kawerify-tech/flo-orders-app-sub000/iam/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
)

//go:generate mockery --name IAMService --output ./mocks
type IAMService interface {
	Resolve(ctx context.Context, email string) (domain.Role, error)
}

type service struct {
	loggerProvider logger.Provider
	iamDAL         iface.IAM
}

func NewService(log logger.Provider, conn *connection.Connection) IAMService {
	return &service{
		loggerProvider: log,
		iamDAL:         dal.NewIAMFirestoreWithClient(conn.Firestore),
	}
}

func (s *service) Resolve(ctx context.Context, email string) (domain.Role, error) {
	if email == "" {
		return "", domain.ErrUnknownIdentity
	}

	return s.iamDAL.RoleByEmail(ctx, email)
}
