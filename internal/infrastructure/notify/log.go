package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/staysmart/hospitality-platform/internal/core/ports"
)

// LogNotifier records notices to the log instead of publishing them. Used in
// development when no broker is configured.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) PublishApproval(_ context.Context, notice ports.ApprovalNotice) error {
	n.log.Info().
		Str("email", notice.Email).
		Str("slug", notice.Slug).
		Msg("approval notice (no broker configured)")
	return nil
}
