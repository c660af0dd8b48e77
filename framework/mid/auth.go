package mid

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kawerify-tech/flo-orders-app-sub000/common"
	"github.com/kawerify-tech/flo-orders-app-sub000/firebase"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/web"
	"github.com/kawerify-tech/flo-orders-app-sub000/iam/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/iam/service"
)

// Authenticate verifies the bearer id token and resolves the caller's role
// from the role collections, placing the resolved identity on the gin context.
func Authenticate(iamService service.IAMService) web.Middleware {
	f := func(before web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			token, _, err := firebase.VerifyIDToken(ctx)
			if err != nil {
				return web.NewRequestError(err, http.StatusUnauthorized)
			}

			email, _ := token.Claims["email"].(string)

			role, err := iamService.Resolve(ctx, email)
			if err != nil {
				return web.NewRequestError(err, http.StatusForbidden)
			}

			identity := &domain.Identity{
				UID:   token.UID,
				Email: email,
				Role:  role,
			}

			ctx.Set(common.CtxKeys.Identity, identity)
			ctx.Set(common.CtxKeys.UID, identity.UID)

			return before(ctx)
		}

		return h
	}

	return f
}

// IdentityFromContext returns the identity resolved by Authenticate.
func IdentityFromContext(ctx *gin.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(common.CtxKeys.Identity).(*domain.Identity)
	return identity, ok
}

// RequireRole rejects callers whose resolved role is not in the allow list.
// It assumes Authenticate already ran.
func RequireRole(roles ...domain.Role) web.Middleware {
	f := func(before web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			identity, ok := IdentityFromContext(ctx)
			if !ok {
				return web.NewRequestError(domain.ErrUnknownIdentity, http.StatusForbidden)
			}

			for _, role := range roles {
				if identity.Role == role {
					return before(ctx)
				}
			}

			return web.NewRequestError(domain.ErrUnknownIdentity, http.StatusForbidden)
		}

		return h
	}

	return f
}
