package entities

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

type Language string

const (
	LanguageEnglish    Language = "ENGLISH"
	LanguageIndonesian Language = "INDONESIAN"
)

// User is the identity record backing authentication. The password hash is
// excluded from JSON serialization entirely; API responses go through the
// PublicUser projection instead.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255" json:"email"`
	Password  string    `gorm:"size:100" json:"-"` // bcrypt hash
	Role      UserRole  `gorm:"size:20;default:'USER'" json:"role"`
	Language  Language  `gorm:"size:20;default:'ENGLISH'" json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser is the outward-facing projection of a User. New User fields stay
// private unless they are added here explicitly.
type PublicUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the projection of the user that is safe to serialize.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Language:  u.Language,
		CreatedAt: u.CreatedAt,
	}
}
