// Package comments provides database operations for article comments.
package comments

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kabarin/kabar/internal/entities"
)

var ErrNotFound = errors.New("comment not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByArticle returns all comments on an article, oldest first, with the
// author projection populated.
func (r *Repository) ListByArticle(articleID uint) ([]entities.Comment, error) {
	var comments []entities.Comment
	err := r.db.Preload("User").
		Where("article_id = ?", articleID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	for i := range comments {
		author := comments[i].User.Public()
		comments[i].Author = &author
	}
	return comments, nil
}

// Create persists a new comment.
func (r *Repository) Create(comment *entities.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID retrieves a comment.
func (r *Repository) GetByID(id uint) (*entities.Comment, error) {
	var comment entities.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
