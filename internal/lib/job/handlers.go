package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleFavoriteAddedTask sends the notification email for a new favorite.
// Returning an error makes Asynq schedule a retry.
func (j *JobService) handleFavoriteAddedTask(ctx context.Context, t *asynq.Task) error {
	var p FavoriteAddedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal favorite added payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskFavoriteAdded).
		Uint("user_id", p.UserID).
		Str("kind", p.Kind).
		Uint("target_id", p.TargetID).
		Logger()

	log.Info().Msg("Processing favorite added task")

	if err := j.email.SendFavoriteAddedEmail(p.Email, p.Username, p.Kind, p.TargetName); err != nil {
		log.Error().Err(err).Msg("Failed to send favorite added email")
		return err
	}

	log.Info().Msg("Successfully sent favorite added email")

	return nil
}
