package http

import (
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kabarin/kabar/internal/apperr"
	"github.com/kabarin/kabar/internal/auth"
	"github.com/kabarin/kabar/internal/database/articles"
	"github.com/kabarin/kabar/internal/database/categories"
	"github.com/kabarin/kabar/internal/entities"
)

type articleInput struct {
	Title        string     `json:"title"`
	Summary      string     `json:"summary"`
	Content      string     `json:"content"`
	Image        string     `json:"image"`
	Source       string     `json:"source"`
	CategorySlug string     `json:"category_slug"`
	PublishedAt  *time.Time `json:"published_at"`
}

type articleListData struct {
	Articles []entities.Article `json:"articles"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}

// ArticlesController serves the article catalogue.
type ArticlesController struct {
	articles   *articles.Repository
	categories *categories.Repository
}

func NewArticlesController(articleRepo *articles.Repository, categoryRepo *categories.Repository) *ArticlesController {
	return &ArticlesController{
		articles:   articleRepo,
		categories: categoryRepo,
	}
}

// List returns a page of articles, optionally filtered by category slug and
// a search term.
func (ctrl *ArticlesController) List(c *gin.Context) {
	params := articles.ListParams{
		Page:         queryInt(c, "page", 1),
		Limit:        queryInt(c, "limit", articles.DefaultLimit),
		CategorySlug: c.Query("category"),
		Search:       c.Query("q"),
	}

	items, total, err := ctrl.articles.List(params)
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "", articleListData{
		Articles: items,
		Total:    total,
		Page:     params.Page,
		Limit:    params.Limit,
	})
}

// Get returns a single article by slug and bumps its view counter.
func (ctrl *ArticlesController) Get(c *gin.Context) {
	slug := c.Param("slug")

	article, err := ctrl.articles.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, articles.ErrNotFound) {
			abort(c, apperr.NotFound("article not found"))
			return
		}
		c.Error(err)
		return
	}

	// A failed view-count bump must not fail the read.
	if err := ctrl.articles.IncrementViewCount(slug); err != nil {
		log.Printf("failed to increment view count for %s: %v", slug, err)
	} else {
		article.ViewCount++
	}

	respondOK(c, "", article)
}

// Create publishes a new article. Admin only.
func (ctrl *ArticlesController) Create(c *gin.Context) {
	var in articleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abort(c, apperr.BadRequest("invalid request body"))
		return
	}
	if in.Title == "" || in.Content == "" || in.CategorySlug == "" {
		abort(c, apperr.BadRequest("title, content and category_slug are required"))
		return
	}

	category, err := ctrl.categories.GetBySlug(in.CategorySlug)
	if err != nil {
		if errors.Is(err, categories.ErrNotFound) {
			abort(c, apperr.BadRequest("unknown category"))
			return
		}
		c.Error(err)
		return
	}

	author, _ := auth.CurrentUser(c)

	publishedAt := time.Now()
	if in.PublishedAt != nil {
		publishedAt = *in.PublishedAt
	}

	article := &entities.Article{
		Title:       in.Title,
		Summary:     in.Summary,
		Content:     in.Content,
		Image:       in.Image,
		Source:      in.Source,
		CategoryID:  category.ID,
		AuthorID:    author.ID,
		PublishedAt: publishedAt,
	}

	if err := ctrl.articles.Create(article); err != nil {
		if errors.Is(err, articles.ErrSlugTaken) {
			abort(c, apperr.Conflict("an article with this title already exists"))
			return
		}
		c.Error(err)
		return
	}

	respondCreated(c, "article created", article)
}

// Update modifies an existing article. Admin only.
func (ctrl *ArticlesController) Update(c *gin.Context) {
	slug := c.Param("slug")

	var in articleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abort(c, apperr.BadRequest("invalid request body"))
		return
	}

	updates := map[string]any{}
	if in.Title != "" {
		updates["title"] = in.Title
	}
	if in.Summary != "" {
		updates["summary"] = in.Summary
	}
	if in.Content != "" {
		updates["content"] = in.Content
	}
	if in.Image != "" {
		updates["image"] = in.Image
	}
	if in.Source != "" {
		updates["source"] = in.Source
	}
	if in.PublishedAt != nil {
		updates["published_at"] = *in.PublishedAt
	}
	if in.CategorySlug != "" {
		category, err := ctrl.categories.GetBySlug(in.CategorySlug)
		if err != nil {
			abort(c, apperr.BadRequest("unknown category"))
			return
		}
		updates["category_id"] = category.ID
	}
	if len(updates) == 0 {
		abort(c, apperr.BadRequest("nothing to update"))
		return
	}

	article, err := ctrl.articles.Update(slug, updates)
	if err != nil {
		if errors.Is(err, articles.ErrNotFound) {
			abort(c, apperr.NotFound("article not found"))
			return
		}
		c.Error(err)
		return
	}

	respondOK(c, "article updated", article)
}

// Delete removes an article. Admin only.
func (ctrl *ArticlesController) Delete(c *gin.Context) {
	if err := ctrl.articles.Delete(c.Param("slug")); err != nil {
		if errors.Is(err, articles.ErrNotFound) {
			abort(c, apperr.NotFound("article not found"))
			return
		}
		c.Error(err)
		return
	}

	respondOK(c, "article deleted", nil)
}

// Share bumps the share counter and returns the new value.
func (ctrl *ArticlesController) Share(c *gin.Context) {
	count, err := ctrl.articles.IncrementShareCount(c.Param("slug"))
	if err != nil {
		if errors.Is(err, articles.ErrNotFound) {
			abort(c, apperr.NotFound("article not found"))
			return
		}
		c.Error(err)
		return
	}

	respondOK(c, "", gin.H{"share_count": count})
}
