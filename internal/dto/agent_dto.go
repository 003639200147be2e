package dto

import (
	"time"

	"bid-agent-be/pkg/store"
)

type CreateSessionRequest struct {
	RawText    string `json:"raw_text" validate:"required"`
	FileName   string `json:"file_name,omitempty"`
	TemplateId string `json:"template_id,omitempty"`
}

type SessionResponse struct {
	SessionId  string     `json:"session_id"`
	Step       store.Step `json:"step"`
	RetryCount int        `json:"retry_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type RunWorkflowRequest struct {
	Template      string `json:"template,omitempty"`
	LawReferences string `json:"law_references,omitempty"`
	UserPrompt    string `json:"user_prompt,omitempty"`
}

type RunWorkflowResponse struct {
	SessionId      string                  `json:"session_id"`
	Verdict        string                  `json:"verdict"`
	Step           store.Step              `json:"step"`
	RetryCount     int                     `json:"retry_count"`
	ExtractedData  *store.ExtractedData    `json:"extracted_data,omitempty"`
	Classification *store.Classification   `json:"classification,omitempty"`
	Document       string                  `json:"document,omitempty"`
	Issues         []store.ValidationIssue `json:"issues"`
	LastError      string                  `json:"last_error,omitempty"`
}

type UploadResponse struct {
	SessionId string               `json:"session_id"`
	FileName  string               `json:"file_name"`
	Result    *RunWorkflowResponse `json:"result"`
}

type GetStateResponse struct {
	SessionId string         `json:"session_id"`
	State     *store.Session `json:"state"`
	CanRetry  bool           `json:"can_retry"`
}

type SubmitFeedbackRequest struct {
	SessionId       string `json:"session_id" validate:"required"`
	FeedbackType    string `json:"feedback_type" validate:"required,oneof=approve reject modify"`
	Comments        string `json:"comments,omitempty"`
	ModifiedContent string `json:"modified_content,omitempty"`
}

type SubmitFeedbackResponse struct {
	SessionId string `json:"session_id"`
	Status    string `json:"status"`
}
