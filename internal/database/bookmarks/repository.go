// Package bookmarks provides database operations for per-user article
// bookmarks.
package bookmarks

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/kabarin/kabar/internal/entities"
)

var (
	ErrNotFound = errors.New("bookmark not found")
	ErrExists   = errors.New("article is already bookmarked")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser returns the user's bookmarks, newest first, with articles and
// their categories preloaded.
func (r *Repository) ListByUser(userID uint) ([]entities.Bookmark, error) {
	var bookmarks []entities.Bookmark
	err := r.db.Preload("Article").Preload("Article.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

// Create bookmarks an article for a user. Returns ErrExists when the pair is
// already present; the unique index backs this against concurrent inserts.
func (r *Repository) Create(userID, articleID uint) (*entities.Bookmark, error) {
	bookmark := &entities.Bookmark{UserID: userID, ArticleID: articleID}
	if err := r.db.Create(bookmark).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrExists
		}
		return nil, err
	}
	return bookmark, nil
}

// Delete removes a user's bookmark on an article.
func (r *Repository) Delete(userID, articleID uint) error {
	result := r.db.Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&entities.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether the user has bookmarked the article.
func (r *Repository) Exists(userID, articleID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Bookmark{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	return count > 0, err
}
