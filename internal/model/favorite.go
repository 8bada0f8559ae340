package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// FavoriteKind tags what a favorite points at.
type FavoriteKind string

const (
	FavoriteKindPlanet    FavoriteKind = "planet"
	FavoriteKindCharacter FavoriteKind = "character"
)

// Label is the capitalized kind, as used in client-facing messages.
func (k FavoriteKind) Label() string {
	switch k {
	case FavoriteKindPlanet:
		return "Planet"
	case FavoriteKindCharacter:
		return "Character"
	default:
		return "Record"
	}
}

// FavoriteTarget is the thing a user marked as favorite: a planet or a character.
// Build it with PlanetTarget or CharacterTarget.
type FavoriteTarget struct {
	Kind FavoriteKind
	ID   uint
}

// PlanetTarget targets the planet with the given id.
func PlanetTarget(id uint) FavoriteTarget {
	return FavoriteTarget{Kind: FavoriteKindPlanet, ID: id}
}

// CharacterTarget targets the character with the given id.
func CharacterTarget(id uint) FavoriteTarget {
	return FavoriteTarget{Kind: FavoriteKindCharacter, ID: id}
}

// Favorite links a user to one target.
type Favorite struct {
	ID        uint
	UserID    uint
	Target    FavoriteTarget
	CreatedAt time.Time
}

// MarshalJSON serializes the favorite with its kind and a single foreign id:
//
//	{"id":1,"user_id":1,"type":"planet","planet_id":3,"created_at":"..."}
func (f Favorite) MarshalJSON() ([]byte, error) {
	out := struct {
		ID          uint         `json:"id"`
		UserID      uint         `json:"user_id"`
		Type        FavoriteKind `json:"type"`
		PlanetID    *uint        `json:"planet_id,omitempty"`
		CharacterID *uint        `json:"character_id,omitempty"`
		CreatedAt   time.Time    `json:"created_at"`
	}{
		ID:        f.ID,
		UserID:    f.UserID,
		Type:      f.Target.Kind,
		CreatedAt: f.CreatedAt,
	}

	id := f.Target.ID
	switch f.Target.Kind {
	case FavoriteKindPlanet:
		out.PlanetID = &id
	case FavoriteKindCharacter:
		out.CharacterID = &id
	default:
		return nil, fmt.Errorf("favorite %d: unknown target kind %q", f.ID, f.Target.Kind)
	}

	return json.Marshal(out)
}

// ErrInvalidFavoriteTarget is returned for rows that reference both or neither target.
var ErrInvalidFavoriteTarget = errors.New("favorite must reference exactly one planet or character")

// FavoriteRecord is the storage shape of a Favorite.
//
// Both foreign columns exist on every row; the check constraint keeps
// exactly one of them set. Code outside this package works with Favorite.
type FavoriteRecord struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	PlanetID    *uint     `gorm:"index;check:chk_favorites_single_target,(planet_id IS NULL) <> (character_id IS NULL)"`
	CharacterID *uint     `gorm:"index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	User      *User      `gorm:"constraint:OnDelete:CASCADE"`
	Planet    *Planet    `gorm:"constraint:OnDelete:CASCADE"`
	Character *Character `gorm:"constraint:OnDelete:CASCADE"`
}

// TableName keeps the table named after the domain entity.
func (FavoriteRecord) TableName() string {
	return "favorites"
}

// NewFavoriteRecord builds the row for a new favorite.
func NewFavoriteRecord(userID uint, target FavoriteTarget) (*FavoriteRecord, error) {
	record := &FavoriteRecord{UserID: userID}

	id := target.ID
	switch target.Kind {
	case FavoriteKindPlanet:
		record.PlanetID = &id
	case FavoriteKindCharacter:
		record.CharacterID = &id
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidFavoriteTarget, target.Kind)
	}

	return record, nil
}

// Favorite converts the row into its domain form.
func (r FavoriteRecord) Favorite() (Favorite, error) {
	f := Favorite{
		ID:        r.ID,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
	}

	switch {
	case r.PlanetID != nil && r.CharacterID == nil:
		f.Target = PlanetTarget(*r.PlanetID)
	case r.CharacterID != nil && r.PlanetID == nil:
		f.Target = CharacterTarget(*r.CharacterID)
	default:
		return Favorite{}, fmt.Errorf("%w: row %d", ErrInvalidFavoriteTarget, r.ID)
	}

	return f, nil
}

// TargetColumn is the column holding the id for target's kind.
func TargetColumn(kind FavoriteKind) (string, error) {
	switch kind {
	case FavoriteKindPlanet:
		return "planet_id", nil
	case FavoriteKindCharacter:
		return "character_id", nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidFavoriteTarget, kind)
	}
}
