package entities

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	Slug      string    `gorm:"uniqueIndex;size:100" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type Article struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"index;size:512" json:"title"`
	Slug        string    `gorm:"uniqueIndex;size:512" json:"slug"`
	Summary     string    `gorm:"size:1024" json:"summary,omitempty"`
	Content     string    `gorm:"type:text" json:"content,omitempty"`
	Image       string    `gorm:"size:2048" json:"image,omitempty"`
	Source      string    `gorm:"size:100" json:"source,omitempty"`
	CategoryID  uint      `gorm:"index" json:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	AuthorID    uint      `gorm:"index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"-"`
	PublishedAt time.Time `gorm:"index" json:"published_at"`
	ViewCount   int64     `gorm:"default:0" json:"view_count"`
	ShareCount  int64     `gorm:"default:0" json:"share_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"index" json:"article_id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Author is the public projection of User, populated for responses.
	Author *PublicUser `gorm:"-" json:"author,omitempty"`
}

type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_bookmark_user_article" json:"user_id"`
	ArticleID uint      `gorm:"uniqueIndex:idx_bookmark_user_article" json:"article_id"`
	Article   Article   `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
