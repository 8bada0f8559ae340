package model

// Character is a person of the Star Wars universe.
//
// Descriptive fields are kept as text: the source data mixes numbers
// with values such as "unknown" or "n/a".
type Character struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:120;not null" json:"name"`
	Gender    string `gorm:"size:40" json:"gender"`
	BirthYear string `gorm:"size:40" json:"birth_year"`
	Height    string `gorm:"size:40" json:"height"`
	Mass      string `gorm:"size:40" json:"mass"`
	HairColor string `gorm:"size:60" json:"hair_color"`
	EyeColor  string `gorm:"size:60" json:"eye_color"`
	SkinColor string `gorm:"size:60" json:"skin_color"`
}
