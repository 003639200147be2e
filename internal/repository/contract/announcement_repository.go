package contract

import (
	"context"

	"bid-agent-be/internal/entity"
)

type IAnnouncementRepository interface {
	Create(ctx context.Context, announcement *entity.ArchivedAnnouncement) error
	FindAll(ctx context.Context, limit, offset int) ([]entity.ArchivedAnnouncement, error)
	FindBySessionId(ctx context.Context, sessionId string) (*entity.ArchivedAnnouncement, error)
	Count(ctx context.Context) (int64, error)
}
