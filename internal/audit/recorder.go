package audit

import (
	"context"

	"go.uber.org/zap"
)

// Recorder menulis audit entry tanpa pernah menggagalkan operasi pemanggil.
// Durabilitas transisi attendance lebih penting daripada kelengkapan audit
// trail; kegagalan tulis hanya dicatat ke log.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

type recorder struct {
	repo   Repository
	logger *zap.Logger
}

func NewRecorder(repo Repository) Recorder {
	return &recorder{
		repo:   repo,
		logger: zap.L().Named("audit.recorder"),
	}
}

func (r *recorder) Record(ctx context.Context, entry Entry) {
	if err := r.repo.Create(ctx, &entry); err != nil {
		r.logger.Error("append audit entry failed",
			zap.String("action", entry.Action),
			zap.Bool("success", entry.Success),
			zap.Error(err),
		)
	}
}
