package model

// User is an API consumer that owns favorites.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"size:120;not null;uniqueIndex" json:"email"`
	Username string `gorm:"size:80;not null" json:"username"`
	IsActive bool   `gorm:"not null" json:"is_active"`
}

// UserWithFavorites is the serialized user detail: the user's own fields
// with its favorites embedded.
type UserWithFavorites struct {
	User
	Favorites []Favorite `json:"favorites"`
}
