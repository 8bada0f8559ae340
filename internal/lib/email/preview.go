package email

// PreviewData contains sample template data for local preview and tests,
// keyed by template name then by template variable.
var PreviewData = map[Template]map[string]string{
	TemplateFavoriteAdded: {
		"Username":   "luke",
		"Kind":       "planet",
		"TargetName": "Tatooine",
	},
}
