package service

import (
	"context"
	"encoding/json"
	"time"

	"bid-agent-be/internal/dto"
	"bid-agent-be/internal/entity"
	"bid-agent-be/internal/pkg/logger"
	"bid-agent-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IArchiveService interface {
	Consume(ctx context.Context) error
	GetAll(ctx context.Context, limit, offset int) ([]*dto.ArchivedAnnouncementResponse, error)
	GetBySessionId(ctx context.Context, sessionId string) (*dto.ArchivedAnnouncementResponse, error)
}

type archiveService struct {
	pubSub *gochannel.GoChannel
	repo   contract.IAnnouncementRepository
	logger logger.ILogger
}

// NewArchiveService wires the completed-session consumer. A nil repository
// disables persistence: events are consumed and dropped, which keeps the
// agent usable without a database connection.
func NewArchiveService(pubSub *gochannel.GoChannel, repo contract.IAnnouncementRepository, log logger.ILogger) IArchiveService {
	return &archiveService{
		pubSub: pubSub,
		repo:   repo,
		logger: log,
	}
}

func (s *archiveService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, TopicSessionCompleted)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *archiveService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SessionCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("ArchiveService", "Failed to unmarshal completed-session event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed payloads never become valid on redelivery
		return
	}

	if s.repo == nil {
		msg.Ack()
		return
	}

	announcement, err := s.buildEntity(&payload)
	if err != nil {
		s.logger.Error("ArchiveService", "Failed to build archive row", map[string]interface{}{"session_id": payload.SessionId, "error": err.Error()})
		msg.Ack()
		return
	}

	if err := s.repo.Create(ctx, announcement); err != nil {
		s.logger.Error("ArchiveService", "Failed to persist archived announcement", map[string]interface{}{"session_id": payload.SessionId, "error": err.Error()})
		msg.Nack()
		return
	}

	s.logger.Info("ArchiveService", "Archived completed announcement", map[string]interface{}{"session_id": payload.SessionId, "verdict": payload.Verdict})
	msg.Ack()
}

func (s *archiveService) buildEntity(payload *dto.SessionCompletedMessage) (*entity.ArchivedAnnouncement, error) {
	extractedJson, err := json.Marshal(payload.ExtractedData)
	if err != nil {
		return nil, err
	}
	classificationJson, err := json.Marshal(payload.Classification)
	if err != nil {
		return nil, err
	}
	issuesJson, err := json.Marshal(payload.Issues)
	if err != nil {
		return nil, err
	}

	contractMethod := ""
	if payload.Classification != nil {
		contractMethod = payload.Classification.ContractMethod
	}

	return &entity.ArchivedAnnouncement{
		Id:             uuid.New(),
		SessionId:      payload.SessionId,
		FileName:       payload.FileName,
		ContractMethod: contractMethod,
		Verdict:        payload.Verdict,
		RetryCount:     payload.RetryCount,
		Document:       payload.Document,
		ExtractedData:  extractedJson,
		Classification: classificationJson,
		Issues:         issuesJson,
		CreatedAt:      time.Now(),
	}, nil
}

func (s *archiveService) GetAll(ctx context.Context, limit, offset int) ([]*dto.ArchivedAnnouncementResponse, error) {
	if s.repo == nil {
		return []*dto.ArchivedAnnouncementResponse{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	announcements, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ArchivedAnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		responses = append(responses, toArchiveResponse(&announcements[i]))
	}
	return responses, nil
}

func (s *archiveService) GetBySessionId(ctx context.Context, sessionId string) (*dto.ArchivedAnnouncementResponse, error) {
	if s.repo == nil {
		return nil, nil
	}

	announcement, err := s.repo.FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if announcement == nil {
		return nil, nil
	}
	return toArchiveResponse(announcement), nil
}

func toArchiveResponse(e *entity.ArchivedAnnouncement) *dto.ArchivedAnnouncementResponse {
	return &dto.ArchivedAnnouncementResponse{
		Id:             e.Id,
		SessionId:      e.SessionId,
		FileName:       e.FileName,
		ContractMethod: e.ContractMethod,
		Verdict:        e.Verdict,
		RetryCount:     e.RetryCount,
		Document:       e.Document,
		CreatedAt:      e.CreatedAt,
	}
}
