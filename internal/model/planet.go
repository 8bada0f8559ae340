package model

// Planet is a planet of the Star Wars universe.
type Planet struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:120;not null" json:"name"`
	Climate        string `gorm:"size:120" json:"climate"`
	Terrain        string `gorm:"size:120" json:"terrain"`
	Population     string `gorm:"size:40" json:"population"`
	Diameter       string `gorm:"size:40" json:"diameter"`
	Gravity        string `gorm:"size:60" json:"gravity"`
	RotationPeriod string `gorm:"size:40" json:"rotation_period"`
	OrbitalPeriod  string `gorm:"size:40" json:"orbital_period"`
}
