package service

import (
	"encoding/json"
	"time"

	"bid-agent-be/internal/dto"
	"bid-agent-be/internal/pkg/logger"
	"bid-agent-be/pkg/agent/policy"
	"bid-agent-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	TopicStageCompleted   = "agent.stage.completed"
	TopicSessionCompleted = "agent.session.completed"
)

type IPublisherService interface {
	StageCompleted(sessionId string, step store.Step, verdict policy.Verdict)
	SessionCompleted(sess *store.Session, verdict policy.Verdict)
}

type publisherService struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

func NewPublisherService(pubSub *gochannel.GoChannel, log logger.ILogger) IPublisherService {
	return &publisherService{
		pubSub: pubSub,
		logger: log,
	}
}

func (p *publisherService) StageCompleted(sessionId string, step store.Step, verdict policy.Verdict) {
	payload := dto.StageCompletedMessage{
		SessionId:   sessionId,
		Step:        step,
		Verdict:     string(verdict),
		CompletedAt: time.Now(),
	}
	p.publish(TopicStageCompleted, payload)
}

func (p *publisherService) SessionCompleted(sess *store.Session, verdict policy.Verdict) {
	payload := dto.SessionCompletedMessage{
		SessionId:      sess.ID,
		FileName:       sess.FileName,
		Verdict:        string(verdict),
		RetryCount:     sess.RetryCount,
		Document:       sess.GeneratedDocument,
		ExtractedData:  sess.ExtractedData,
		Classification: sess.Classification,
		Issues:         sess.ValidationIssues,
		CompletedAt:    time.Now(),
	}
	p.publish(TopicSessionCompleted, payload)
}

func (p *publisherService) publish(topic string, payload interface{}) {
	msgJson, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("PublisherService", "Failed to marshal event payload", map[string]interface{}{"topic": topic, "error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), msgJson)
	if err := p.pubSub.Publish(topic, msg); err != nil {
		p.logger.Error("PublisherService", "Failed to publish event", map[string]interface{}{"topic": topic, "error": err.Error()})
	}
}
