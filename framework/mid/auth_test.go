package mid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kawerify-tech/flo-orders-app-sub000/common"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/web"
	"github.com/kawerify-tech/flo-orders-app-sub000/iam/domain"
)

func getContext() *gin.Context {
	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest(http.MethodGet, "http://example.com/foo", nil)

	return ctx
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		identity   *domain.Identity
		allowed    []domain.Role
		wantStatus int
	}{
		{
			name:     "allowed role passes through",
			identity: &domain.Identity{UID: "uid-1", Email: "admin@flo.example", Role: domain.RoleAdmin},
			allowed:  []domain.Role{domain.RoleAdmin, domain.RoleAttendant},
		},
		{
			name:       "role outside the allow list is forbidden",
			identity:   &domain.Identity{UID: "uid-2", Email: "client@flo.example", Role: domain.RoleClient},
			allowed:    []domain.Role{domain.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing identity is forbidden",
			allowed:    []domain.Role{domain.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := getContext()
			if tt.identity != nil {
				ctx.Set(common.CtxKeys.Identity, tt.identity)
			}

			var reached bool

			handler := RequireRole(tt.allowed...)(func(ctx *gin.Context) error {
				reached = true
				return nil
			})

			err := handler(ctx)
			if tt.wantStatus != 0 {
				var webErr *web.Error
				assert.ErrorAs(t, err, &webErr)
				assert.Equal(t, tt.wantStatus, webErr.Status)
				assert.False(t, reached)

				return
			}

			assert.NoError(t, err)
			assert.True(t, reached)
		})
	}
}

func TestIdentityFromContext(t *testing.T) {
	ctx := getContext()

	_, ok := IdentityFromContext(ctx)
	assert.False(t, ok)

	want := &domain.Identity{UID: "uid-1", Email: "admin@flo.example", Role: domain.RoleAdmin}
	ctx.Set(common.CtxKeys.Identity, want)

	got, ok := IdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}
