package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByPath filters by exact path
type ByPath struct {
	Path string
}

func (s ByPath) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("path = ?", s.Path)
}

// UnderPath filters rows whose path lives beneath a folder prefix.
// The prefix itself is excluded.
type UnderPath struct {
	Prefix string
}

func (s UnderPath) Apply(db *gorm.DB) *gorm.DB {
	prefix := strings.TrimSuffix(s.Prefix, "/")
	return db.Where("path LIKE ?", prefix+"/%")
}

// ByFolderId filters documents by containing folder
type ByFolderId struct {
	FolderId uuid.UUID
}

func (s ByFolderId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("folder_id = ?", s.FolderId)
}

// ByParentId filters folders by parent
type ByParentId struct {
	ParentId uuid.UUID
}

func (s ByParentId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("parent_id = ?", s.ParentId)
}

// ByDocumentId filters chunks by owning document
type ByDocumentId struct {
	DocumentId uuid.UUID
}

func (s ByDocumentId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentId)
}

// ByName filters by exact name, case insensitive
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(name) = LOWER(?)", s.Name)
}

// ByOperationId filters operation logs by the staged record's id
type ByOperationId struct {
	OperationId string
}

func (s ByOperationId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("operation_id = ?", s.OperationId)
}
