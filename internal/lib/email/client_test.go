package email

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/starwars-api/internal/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := config.Default()
	logger := zerolog.Nop()
	return NewClient(cfg, &logger)
}

func TestRenderFavoriteAdded(t *testing.T) {
	c := newTestClient(t)

	html, err := c.Render(TemplateFavoriteAdded, PreviewData[TemplateFavoriteAdded])
	require.NoError(t, err)

	assert.Contains(t, html, "May the Force be with you, luke")
	assert.Contains(t, html, "<strong>Tatooine</strong>")
	assert.Contains(t, html, "the planet")
}

func TestRenderEscapesData(t *testing.T) {
	c := newTestClient(t)

	html, err := c.Render(TemplateFavoriteAdded, map[string]string{
		"Username":   "<script>",
		"Kind":       "character",
		"TargetName": "R2-D2",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderUnknownTemplate(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Render(Template("missing"), nil)
	assert.Error(t, err)
}

func TestSendWithoutAPIKeyIsSkipped(t *testing.T) {
	c := newTestClient(t)
	require.False(t, c.Enabled())

	err := c.SendFavoriteAddedEmail("luke@rebellion.org", "luke", "planet", "Tatooine")
	assert.NoError(t, err)
}

func TestEnabledWithAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.Integration.ResendAPIKey = "re_test"
	logger := zerolog.Nop()

	assert.True(t, NewClient(cfg, &logger).Enabled())
}
