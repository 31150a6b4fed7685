package http

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/kabarin/kabar/internal/apperr"
	"github.com/kabarin/kabar/internal/auth"
	"github.com/kabarin/kabar/internal/config"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthController exposes the registration/login/session endpoints.
type AuthController struct {
	service *auth.Service
	codec   *auth.TokenCodec
	config  config.Auth
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *auth.Service, codec *auth.TokenCodec, cfg config.Auth) *AuthController {
	return &AuthController{
		service: service,
		codec:   codec,
		config:  cfg,
	}
}

// RegisterRoutes registers the auth endpoints on the given group. /me is the
// only one behind the auth middleware.
func (ac *AuthController) RegisterRoutes(api *gin.RouterGroup, authRequired gin.HandlerFunc) {
	group := api.Group("/auth")
	group.POST("/register", ValidateRegister, ac.Register)
	group.POST("/login", ValidateLogin, ac.Login)
	group.GET("/me", authRequired, ac.Me)
	group.POST("/logout", ac.Logout)
}

// ValidateRegister checks the registration payload shape before the handler
// runs. The body is bound with caching so the handler can bind it again.
func ValidateRegister(c *gin.Context) {
	var in registerRequest
	if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
		abort(c, apperr.BadRequest("invalid request body"))
		return
	}

	if in.Name == "" || in.Email == "" || in.Password == "" {
		abort(c, apperr.BadRequest("all fields are required"))
		return
	}
	if len(in.Password) < auth.MinPasswordLength {
		abort(c, apperr.BadRequest("password must be at least 6 characters"))
		return
	}
	if !emailPattern.MatchString(in.Email) {
		abort(c, apperr.BadRequest("invalid email format"))
		return
	}

	c.Next()
}

// ValidateLogin checks only that email and password are present.
func ValidateLogin(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
		abort(c, apperr.BadRequest("invalid request body"))
		return
	}

	if in.Email == "" || in.Password == "" {
		abort(c, apperr.BadRequest("email and password are required"))
		return
	}

	c.Next()
}

// Register creates a new account, issues a session token and sets the cookie.
func (ac *AuthController) Register(c *gin.Context) {
	var in registerRequest
	if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
		abort(c, apperr.BadRequest("invalid request body"))
		return
	}

	user, err := ac.service.Register(auth.RegisterInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			abort(c, apperr.Conflict("email is already registered"))
			return
		}
		c.Error(err)
		return
	}

	if !ac.setTokenCookie(c, user.ID) {
		return
	}

	respondCreated(c, "registration successful", user.Public())
}

// Login verifies credentials, issues a session token and sets the cookie.
func (ac *AuthController) Login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
		abort(c, apperr.BadRequest("invalid request body"))
		return
	}

	user, err := ac.service.Login(auth.LoginInput{Email: in.Email, Password: in.Password})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			abort(c, apperr.Unauthorized("invalid email or password"))
			return
		}
		c.Error(err)
		return
	}

	if !ac.setTokenCookie(c, user.ID) {
		return
	}

	respondOK(c, "login successful", user.Public())
}

// Me returns the authenticated user attached by the auth middleware.
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		abort(c, apperr.Unauthorized("not authenticated"))
		return
	}

	respondOK(c, "", user.Public())
}

// Logout clears the session cookie. There is no server-side state to revoke;
// a previously issued token stays valid until its natural expiry.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", ac.config.SecureCookies, true)

	respondOK(c, "logout successful", nil)
}

// setTokenCookie issues a token for the user and attaches it as the HTTP-only
// session cookie. Reports false after recording an error on the context.
func (ac *AuthController) setTokenCookie(c *gin.Context, userID uint) bool {
	token, err := ac.codec.Issue(userID)
	if err != nil {
		c.Error(err)
		return false
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, token, int(ac.config.TokenTTL.Seconds()), "/", "", ac.config.SecureCookies, true)
	return true
}

func abort(c *gin.Context, err *apperr.Error) {
	c.Error(err)
	c.Abort()
}
