package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uint           `gorm:"not null;index"`
	FolderId  *uuid.UUID     `gorm:"type:uuid;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Path      string         `gorm:"type:text;not null;index"`
	Size      int64          `gorm:"default:0"`
	MimeType  string         `gorm:"type:varchar(127)"`
	Content   string         `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
