package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id        uuid.UUID
	UserId    uint
	FolderId  *uuid.UUID
	Name      string
	Path      string
	Size      int64
	MimeType  string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
