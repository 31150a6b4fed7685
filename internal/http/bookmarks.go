package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kabarin/kabar/internal/apperr"
	"github.com/kabarin/kabar/internal/auth"
	"github.com/kabarin/kabar/internal/database/articles"
	"github.com/kabarin/kabar/internal/database/bookmarks"
)

// BookmarksController serves the authenticated user's saved articles.
type BookmarksController struct {
	bookmarks *bookmarks.Repository
	articles  *articles.Repository
}

func NewBookmarksController(bookmarkRepo *bookmarks.Repository, articleRepo *articles.Repository) *BookmarksController {
	return &BookmarksController{
		bookmarks: bookmarkRepo,
		articles:  articleRepo,
	}
}

// List returns the current user's bookmarks, newest first.
func (ctrl *BookmarksController) List(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	items, err := ctrl.bookmarks.ListByUser(user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "", items)
}

// Create bookmarks the article identified by slug for the current user.
func (ctrl *BookmarksController) Create(c *gin.Context) {
	article, err := ctrl.articles.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, articles.ErrNotFound) {
			abort(c, apperr.NotFound("article not found"))
			return
		}
		c.Error(err)
		return
	}

	user, _ := auth.CurrentUser(c)

	bookmark, err := ctrl.bookmarks.Create(user.ID, article.ID)
	if err != nil {
		if errors.Is(err, bookmarks.ErrExists) {
			abort(c, apperr.Conflict("article is already bookmarked"))
			return
		}
		c.Error(err)
		return
	}

	respondCreated(c, "article bookmarked", bookmark)
}

// Delete removes the current user's bookmark on the article.
func (ctrl *BookmarksController) Delete(c *gin.Context) {
	article, err := ctrl.articles.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, articles.ErrNotFound) {
			abort(c, apperr.NotFound("article not found"))
			return
		}
		c.Error(err)
		return
	}

	user, _ := auth.CurrentUser(c)

	if err := ctrl.bookmarks.Delete(user.ID, article.ID); err != nil {
		if errors.Is(err, bookmarks.ErrNotFound) {
			abort(c, apperr.NotFound("bookmark not found"))
			return
		}
		c.Error(err)
		return
	}

	respondOK(c, "bookmark removed", nil)
}
