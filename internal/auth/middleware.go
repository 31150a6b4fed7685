package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kabarin/kabar/internal/apperr"
	"github.com/kabarin/kabar/internal/entities"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

// ContextKeyUser is the gin context key holding the authenticated *entities.User.
const ContextKeyUser = "auth_user"

// Middleware authenticates a request from its session cookie and attaches the
// resolved user to the request context. Outcomes:
//
//   - no cookie: 401
//   - cookie present but verification fails: 401
//   - token valid but the user no longer exists: 404
//   - anything unexpected (store unreachable): generic 401
//
// Errors are recorded on the context and rendered by apperr.Handler.
func Middleware(service *Service, codec *TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			abort(c, apperr.Unauthorized("not authenticated, please log in"))
			return
		}

		userID, err := codec.Verify(token)
		if err != nil {
			abort(c, apperr.Unauthorized("invalid or expired token"))
			return
		}

		user, err := service.GetUserByID(userID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				abort(c, apperr.NotFound("user not found"))
				return
			}
			abort(c, apperr.Unauthorized("not authenticated"))
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// RequireAdmin rejects requests whose authenticated user is not an
// administrator. Must run after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.Role != entities.UserRoleAdmin {
			abort(c, apperr.New(http.StatusForbidden, "insufficient permissions"))
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from the gin context.
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	v, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*entities.User)
	return user, ok
}

func abort(c *gin.Context, err *apperr.Error) {
	c.Error(err)
	c.Abort()
}
