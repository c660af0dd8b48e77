package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kawerify-tech/flo-orders-app-sub000/iam/domain"
)

type IAM struct {
	mock.Mock
}

func (m *IAM) RoleByEmail(ctx context.Context, email string) (domain.Role, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.Role), args.Error(1)
}
