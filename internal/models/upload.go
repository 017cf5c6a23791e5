package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akshay2172/Excel-Analytics-Platform/internal/excel"
)

// Upload is one ingested spreadsheet, owned by exactly one user.
type Upload struct {
	ID       uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	UserID   uuid.UUID  `gorm:"type:char(36);index;not null" json:"userId"`
	Filename string     `gorm:"size:255" json:"filename"`
	Parsed   excel.Rows `gorm:"type:json" json:"parsed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *Upload) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
