package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kabarin/kabar/internal/apperr"
	"github.com/kabarin/kabar/internal/auth"
	"github.com/kabarin/kabar/internal/database/articles"
	"github.com/kabarin/kabar/internal/database/comments"
	"github.com/kabarin/kabar/internal/entities"
)

type commentInput struct {
	Body string `json:"body"`
}

// CommentsController serves comments on articles.
type CommentsController struct {
	comments *comments.Repository
	articles *articles.Repository
}

func NewCommentsController(commentRepo *comments.Repository, articleRepo *articles.Repository) *CommentsController {
	return &CommentsController{
		comments: commentRepo,
		articles: articleRepo,
	}
}

// ListByArticle returns all comments on the article identified by slug.
func (ctrl *CommentsController) ListByArticle(c *gin.Context) {
	article, ok := ctrl.resolveArticle(c)
	if !ok {
		return
	}

	items, err := ctrl.comments.ListByArticle(article.ID)
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "", items)
}

// Create adds a comment by the authenticated user.
func (ctrl *CommentsController) Create(c *gin.Context) {
	article, ok := ctrl.resolveArticle(c)
	if !ok {
		return
	}

	var in commentInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Body == "" {
		abort(c, apperr.BadRequest("comment body is required"))
		return
	}

	user, _ := auth.CurrentUser(c)

	comment := &entities.Comment{
		ArticleID: article.ID,
		UserID:    user.ID,
		Body:      in.Body,
	}
	if err := ctrl.comments.Create(comment); err != nil {
		c.Error(err)
		return
	}

	author := user.Public()
	comment.Author = &author

	respondCreated(c, "comment added", comment)
}

// Delete removes a comment. Only its author or an administrator may delete it.
func (ctrl *CommentsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		abort(c, apperr.BadRequest("invalid comment id"))
		return
	}

	comment, err := ctrl.comments.GetByID(id)
	if err != nil {
		if errors.Is(err, comments.ErrNotFound) {
			abort(c, apperr.NotFound("comment not found"))
			return
		}
		c.Error(err)
		return
	}

	user, _ := auth.CurrentUser(c)
	if comment.UserID != user.ID && user.Role != entities.UserRoleAdmin {
		abort(c, apperr.New(http.StatusForbidden, "you can only delete your own comments"))
		return
	}

	if err := ctrl.comments.Delete(id); err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "comment deleted", nil)
}

func (ctrl *CommentsController) resolveArticle(c *gin.Context) (*entities.Article, bool) {
	article, err := ctrl.articles.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, articles.ErrNotFound) {
			abort(c, apperr.NotFound("article not found"))
			return nil, false
		}
		c.Error(err)
		return nil, false
	}
	return article, true
}
