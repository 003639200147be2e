package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bid-agent-be/internal/entity"
	"bid-agent-be/internal/repository/contract"
)

type AnnouncementRepositoryImpl struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) contract.IAnnouncementRepository {
	return &AnnouncementRepositoryImpl{db: db}
}

func (r *AnnouncementRepositoryImpl) Create(ctx context.Context, announcement *entity.ArchivedAnnouncement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *AnnouncementRepositoryImpl) FindAll(ctx context.Context, limit, offset int) ([]entity.ArchivedAnnouncement, error) {
	var announcements []entity.ArchivedAnnouncement
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&announcements).Error
	return announcements, err
}

func (r *AnnouncementRepositoryImpl) FindBySessionId(ctx context.Context, sessionId string) (*entity.ArchivedAnnouncement, error) {
	var announcement entity.ArchivedAnnouncement
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("created_at DESC").
		First(&announcement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *AnnouncementRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ArchivedAnnouncement{}).Count(&count).Error
	return count, err
}
