package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Content    string
	ChunkIndex int
	Embedding  []float32
	CreatedAt  time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
