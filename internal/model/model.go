// Package model declares the entities the API serves and how they are
// persisted and serialized.
//
// Users, characters and planets are catalog rows created outside the API.
// Favorites link a user to exactly one planet or one character.
package model

// All returns every persisted model, in dependency order, for schema migration.
func All() []any {
	return []any{
		&User{},
		&Character{},
		&Planet{},
		&FavoriteRecord{},
	}
}
