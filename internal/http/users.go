package http

import (
	"github.com/gin-gonic/gin"

	"github.com/kabarin/kabar/internal/apperr"
	"github.com/kabarin/kabar/internal/auth"
	"github.com/kabarin/kabar/internal/database/users"
	"github.com/kabarin/kabar/internal/entities"
)

type languageInput struct {
	Language entities.Language `json:"language"`
}

// UsersController serves profile-level operations for the current user.
type UsersController struct {
	users *users.Repository
}

func NewUsersController(repo *users.Repository) *UsersController {
	return &UsersController{users: repo}
}

// UpdateLanguage sets the current user's language preference.
func (ctrl *UsersController) UpdateLanguage(c *gin.Context) {
	var in languageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abort(c, apperr.BadRequest("invalid request body"))
		return
	}

	switch in.Language {
	case entities.LanguageEnglish, entities.LanguageIndonesian:
	default:
		abort(c, apperr.BadRequest("language must be ENGLISH or INDONESIAN"))
		return
	}

	user, _ := auth.CurrentUser(c)

	if err := ctrl.users.UpdateLanguage(user.ID, in.Language); err != nil {
		c.Error(err)
		return
	}

	user.Language = in.Language
	respondOK(c, "language updated", user.Public())
}
