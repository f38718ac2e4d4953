package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunk struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID       `gorm:"type:uuid;not null;index"`
	Content    string          `gorm:"type:text"`
	ChunkIndex int             `gorm:"default:0"`
	Embedding  pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	DeletedAt  gorm.DeletedAt  `gorm:"index"`

	// Similarity is populated only by the vector search query.
	Similarity float64 `gorm:"->;-:migration"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
