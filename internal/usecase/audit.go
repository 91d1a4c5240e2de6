package usecase

import (
	"context"
	"time"

	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
	drepo "github.com/ashishpawar00/KeywordResearchTool/internal/domain/repository"
	applogger "github.com/ashishpawar00/KeywordResearchTool/pkg/logger"
)

// Broadcaster pushes a fetch event to live listeners.
type Broadcaster interface {
	Broadcast(ev *models.FetchEvent)
}

// Auditor fans fetch events out to the configured sinks: at most one of
// publisher/store (the history backend) plus the live broadcast hub. All
// sinks are best-effort; audit failures never fail the request.
type Auditor struct {
	publisher drepo.EventPublisher
	store     drepo.HistoryStore
	hub       Broadcaster
	logger    *applogger.Logger
}

func NewAuditor(publisher drepo.EventPublisher, store drepo.HistoryStore, hub Broadcaster, l *applogger.Logger) *Auditor {
	return &Auditor{publisher: publisher, store: store, hub: hub, logger: l}
}

// Record delivers the event to every configured sink.
func (a *Auditor) Record(ctx context.Context, ev *models.FetchEvent) {
	// Audit should not inherit the request's remaining deadline.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, ev); err != nil {
			a.logger.Warn("audit publish failed", applogger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Record(ctx, ev); err != nil {
			a.logger.Warn("audit store failed", applogger.Error(err))
		}
	}
	if a.hub != nil {
		a.hub.Broadcast(ev)
	}
}

// History returns the recent audit trail, empty when no store is configured.
func (a *Auditor) History(ctx context.Context, limit int) ([]models.FetchEvent, error) {
	if a.store == nil {
		return nil, nil
	}
	return a.store.Recent(ctx, limit)
}
