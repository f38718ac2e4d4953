package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Name     string     `json:"name" validate:"required"`
	FolderId *uuid.UUID `json:"folderId"`
	MimeType string     `json:"mimeType"`
	Content  string     `json:"content"`
}

type CreateDocumentResponse struct {
	Id   uuid.UUID `json:"id"`
	Path string    `json:"path"`
}

type ShowDocumentResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Path      string     `json:"path"`
	FolderId  *uuid.UUID `json:"folderId"`
	Size      int64      `json:"size"`
	MimeType  string     `json:"mimeType"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type ListDocumentResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Path      string     `json:"path"`
	FolderId  *uuid.UUID `json:"folderId"`
	Size      int64      `json:"size"`
	MimeType  string     `json:"mimeType"`
	CreatedAt time.Time  `json:"createdAt"`
}

// PublishEmbedDocumentMessage is the ingestion queue payload. The consumer
// re-reads the document, so the id is all that travels.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

type ListFolderResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Path      string     `json:"path"`
	ParentId  *uuid.UUID `json:"parentId"`
	CreatedAt time.Time  `json:"createdAt"`
}
