package service

import (
	"context"

	"bid-agent-be/internal/dto"
	"bid-agent-be/internal/pkg/logger"
	"bid-agent-be/pkg/agent/engine"
	"bid-agent-be/pkg/agent/feedback"
	"bid-agent-be/pkg/ingest"
	"bid-agent-be/pkg/store"
)

type IAgentService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Upload(ctx context.Context, fileName string, content []byte, templateId, userPrompt string) (*dto.UploadResponse, error)
	Run(ctx context.Context, sessionId string, req *dto.RunWorkflowRequest) (*dto.RunWorkflowResponse, error)
	GetState(ctx context.Context, sessionId string) (*dto.GetStateResponse, error)
	SubmitFeedback(ctx context.Context, req *dto.SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error)
}

type agentService struct {
	sessions        store.SessionStore
	engine          *engine.Engine
	feedbackHandler *feedback.Handler
	logger          logger.ILogger
}

func NewAgentService(
	sessions store.SessionStore,
	eng *engine.Engine,
	feedbackHandler *feedback.Handler,
	log logger.ILogger,
) IAgentService {
	return &agentService{
		sessions:        sessions,
		engine:          eng,
		feedbackHandler: feedbackHandler,
		logger:          log,
	}
}

func (s *agentService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	sess, err := s.sessions.Create(req.RawText, req.FileName, req.TemplateId)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AgentService", "Session created", map[string]interface{}{"session_id": sess.ID, "file_name": sess.FileName})

	return &dto.SessionResponse{
		SessionId:  sess.ID,
		Step:       sess.Step,
		RetryCount: sess.RetryCount,
		CreatedAt:  sess.CreatedAt,
		UpdatedAt:  sess.UpdatedAt,
	}, nil
}

// Upload is the one-stop path: parse the file, create the session, and drive
// the workflow until it pauses or completes.
func (s *agentService) Upload(ctx context.Context, fileName string, content []byte, templateId, userPrompt string) (*dto.UploadResponse, error) {
	rawText, err := ingest.Parse(content, fileName)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Create(rawText, fileName, templateId)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AgentService", "Upload accepted", map[string]interface{}{"session_id": sess.ID, "file_name": fileName, "bytes": len(content)})

	result, err := s.Run(ctx, sess.ID, &dto.RunWorkflowRequest{UserPrompt: userPrompt})
	if err != nil {
		return nil, err
	}

	return &dto.UploadResponse{
		SessionId: sess.ID,
		FileName:  fileName,
		Result:    result,
	}, nil
}

func (s *agentService) Run(ctx context.Context, sessionId string, req *dto.RunWorkflowRequest) (*dto.RunWorkflowResponse, error) {
	opts := engine.Options{}
	if req != nil {
		opts.TemplateContent = req.Template
		opts.LawReferences = req.LawReferences
		opts.UserPrompt = req.UserPrompt
	}

	result, err := s.engine.Run(ctx, sessionId, opts)
	if err != nil {
		s.logger.Error("AgentService", "Workflow run failed", map[string]interface{}{"session_id": sessionId, "error": err.Error()})
		return nil, err
	}

	s.logger.Info("AgentService", "Workflow run finished", map[string]interface{}{
		"session_id":  sessionId,
		"verdict":     string(result.Verdict),
		"step":        string(result.Step),
		"retry_count": result.RetryCount,
	})

	return &dto.RunWorkflowResponse{
		SessionId:      sessionId,
		Verdict:        string(result.Verdict),
		Step:           result.Step,
		RetryCount:     result.RetryCount,
		ExtractedData:  result.ExtractedData,
		Classification: result.Classification,
		Document:       result.Document,
		Issues:         result.Issues,
		LastError:      result.LastError,
	}, nil
}

func (s *agentService) GetState(ctx context.Context, sessionId string) (*dto.GetStateResponse, error) {
	sess, err := s.sessions.Get(sessionId)
	if err != nil {
		return nil, err
	}

	return &dto.GetStateResponse{
		SessionId: sess.ID,
		State:     sess,
		CanRetry:  sess.CanRetry(),
	}, nil
}

func (s *agentService) SubmitFeedback(ctx context.Context, req *dto.SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error) {
	status, err := s.feedbackHandler.Submit(feedback.Submission{
		SessionID:       req.SessionId,
		Type:            req.FeedbackType,
		Comments:        req.Comments,
		ModifiedContent: req.ModifiedContent,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AgentService", "Feedback recorded", map[string]interface{}{"session_id": req.SessionId, "status": status})

	return &dto.SubmitFeedbackResponse{
		SessionId: req.SessionId,
		Status:    status,
	}, nil
}
