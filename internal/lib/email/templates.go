package email

import "embed"

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateFavoriteAdded corresponds to templates/favorite_added.html
	TemplateFavoriteAdded Template = "favorite_added"
)

//go:embed templates/*.html
var templates embed.FS
