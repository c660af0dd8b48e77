package iface

import (
	"context"

	"github.com/kawerify-tech/flo-orders-app-sub000/iam/domain"
)

//go:generate mockery --name IAM --output ../mocks
type IAM interface {
	RoleByEmail(ctx context.Context, email string) (domain.Role, error)
}
