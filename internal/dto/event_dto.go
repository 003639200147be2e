package dto

import (
	"time"

	"bid-agent-be/pkg/store"
)

type StageCompletedMessage struct {
	SessionId   string     `json:"session_id"`
	Step        store.Step `json:"step"`
	Verdict     string     `json:"verdict"`
	CompletedAt time.Time  `json:"completed_at"`
}

type SessionCompletedMessage struct {
	SessionId      string                  `json:"session_id"`
	FileName       string                  `json:"file_name,omitempty"`
	Verdict        string                  `json:"verdict"`
	RetryCount     int                     `json:"retry_count"`
	Document       string                  `json:"document"`
	ExtractedData  *store.ExtractedData    `json:"extracted_data,omitempty"`
	Classification *store.Classification   `json:"classification,omitempty"`
	Issues         []store.ValidationIssue `json:"issues"`
	CompletedAt    time.Time               `json:"completed_at"`
}
