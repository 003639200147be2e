package dto

import (
	"time"

	"github.com/google/uuid"
)

type ArchivedAnnouncementResponse struct {
	Id             uuid.UUID `json:"id"`
	SessionId      string    `json:"session_id"`
	FileName       string    `json:"file_name,omitempty"`
	ContractMethod string    `json:"contract_method"`
	Verdict        string    `json:"verdict"`
	RetryCount     int       `json:"retry_count"`
	Document       string    `json:"document"`
	CreatedAt      time.Time `json:"created_at"`
}
