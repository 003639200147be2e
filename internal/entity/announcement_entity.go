package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ArchivedAnnouncement is the durable record of a finalized drafting session.
// The session itself lives in memory for its working lifetime only; this row
// is what survives it.
type ArchivedAnnouncement struct {
	Id             uuid.UUID `gorm:"primaryKey"`
	SessionId      string    `gorm:"index"`
	FileName       string
	ContractMethod string
	Verdict        string
	RetryCount     int
	Document       string         `gorm:"type:text"`
	ExtractedData  datatypes.JSON `gorm:"type:jsonb"`
	Classification datatypes.JSON `gorm:"type:jsonb"`
	Issues         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time
}

func (ArchivedAnnouncement) TableName() string {
	return "archived_announcements"
}
