// Package articles provides database operations for the article catalogue.
package articles

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kabarin/kabar/internal/entities"
)

var (
	ErrNotFound  = errors.New("article not found")
	ErrSlugTaken = errors.New("article slug already exists")
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListParams narrows and pages the article listing.
type ListParams struct {
	Page         int
	Limit        int
	CategorySlug string
	Search       string
}

// Repository handles article database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new articles repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns a page of articles ordered by publication date, newest first,
// together with the total count for the filter.
func (r *Repository) List(p ListParams) ([]entities.Article, int64, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	query := r.db.Model(&entities.Article{}).Preload("Category")

	if p.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = articles.category_id").
			Where("categories.slug = ?", p.CategorySlug)
	}
	if p.Search != "" {
		like := "%" + p.Search + "%"
		query = query.Where("articles.title LIKE ? OR articles.summary LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []entities.Article
	err := query.
		Order("articles.published_at DESC").
		Offset((p.Page - 1) * p.Limit).
		Limit(p.Limit).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// GetBySlug retrieves a single article with its category.
func (r *Repository) GetBySlug(slug string) (*entities.Article, error) {
	var article entities.Article
	err := r.db.Preload("Category").Where("slug = ?", slug).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// Create persists a new article. If the slug is empty it is derived from the
// title.
func (r *Repository) Create(article *entities.Article) error {
	if article.Slug == "" {
		article.Slug = Slugify(article.Title)
	}

	var existing entities.Article
	err := r.db.Where("slug = ?", article.Slug).First(&existing).Error
	if err == nil {
		return ErrSlugTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.Create(article).Error
}

// Update applies non-zero fields of updates to the article with the slug.
func (r *Repository) Update(slug string, updates map[string]any) (*entities.Article, error) {
	article, err := r.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(article).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetBySlug(article.Slug)
}

// Delete removes the article with the given slug.
func (r *Repository) Delete(slug string) error {
	result := r.db.Where("slug = ?", slug).Delete(&entities.Article{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViewCount bumps the view counter without touching updated_at.
func (r *Repository) IncrementViewCount(slug string) error {
	return r.db.Model(&entities.Article{}).
		Where("slug = ?", slug).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// IncrementShareCount bumps the share counter and returns the new value.
func (r *Repository) IncrementShareCount(slug string) (int64, error) {
	result := r.db.Model(&entities.Article{}).
		Where("slug = ?", slug).
		UpdateColumn("share_count", gorm.Expr("share_count + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	article, err := r.GetBySlug(slug)
	if err != nil {
		return 0, err
	}
	return article.ShareCount, nil
}
