package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Analysis is a saved chart configuration plus its AI summary, bound to one
// of the owner's uploads.
type Analysis struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:char(36);index;not null" json:"userId"`
	UploadID  uuid.UUID `gorm:"type:char(36);index;not null" json:"uploadId"`
	Summary   string    `gorm:"type:text;not null" json:"summary"`
	ChartType string    `gorm:"size:50;not null" json:"chartType"`
	XAxis     string    `gorm:"size:255;not null" json:"xAxis"`
	YAxis     string    `gorm:"size:255;not null" json:"yAxis"`
	Title     string    `gorm:"size:255" json:"title"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Analysis) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
