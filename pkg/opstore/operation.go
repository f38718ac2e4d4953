package opstore

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OperationKind is the closed set of operations the intent router may produce.
type OperationKind string

const (
	KindMove         OperationKind = "move"
	KindCopy         OperationKind = "copy"
	KindDelete       OperationKind = "delete"
	KindRename       OperationKind = "rename"
	KindCreateFolder OperationKind = "create_folder"
	KindSearch       OperationKind = "search"
	KindSummarize    OperationKind = "summarize"
	KindError        OperationKind = "error"
)

// Kinds lists every valid OperationKind.
var Kinds = []OperationKind{
	KindMove, KindCopy, KindDelete, KindRename,
	KindCreateFolder, KindSearch, KindSummarize, KindError,
}

// IsValidKind reports whether s is a member of the kind enumeration.
func IsValidKind(s string) bool {
	for _, k := range Kinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// RiskLevel of a staged operation, fixed per kind.
type RiskLevel string

const (
	RiskNone   RiskLevel = "none"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskFor returns the risk level assigned to a kind.
func RiskFor(kind OperationKind) RiskLevel {
	switch kind {
	case KindDelete:
		return RiskHigh
	case KindMove, KindRename:
		return RiskMedium
	case KindError:
		return RiskNone
	default:
		return RiskLow
	}
}

// NeedsConfirmation reports whether a kind must be confirmed before execution.
// Only search and error skip the confirmation dialog.
func NeedsConfirmation(kind OperationKind) bool {
	return kind != KindSearch && kind != KindError
}

// FileItem is a selection target from the client view.
type FileItem struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // "file" | "folder"
	Path string `json:"path"`
	Size int64  `json:"size,omitempty"`
}

// FileItemList accepts either a single object or an array on the wire.
// Rename payloads historically carried a bare FileItem.
type FileItemList []FileItem

func (l *FileItemList) UnmarshalJSON(data []byte) error {
	var items []FileItem
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var single FileItem
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*l = FileItemList{single}
	return nil
}

// FolderItem is a folder available in the current client view.
type FolderItem struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// OperationContext is the client-side view snapshot; read-only to the core.
type OperationContext struct {
	CurrentPath      string       `json:"currentPath"`
	SelectedFiles    []FileItem   `json:"selectedFiles"`
	AvailableFolders []FolderItem `json:"availableFolders"`
	Timestamp        time.Time    `json:"timestamp"`
}

// Operation is the per-kind payload. Fields not used by a kind stay empty.
type Operation struct {
	Type        OperationKind `json:"type"`
	Targets     FileItemList  `json:"targets,omitempty"`
	Destination string        `json:"destination,omitempty"`
	NewName     string        `json:"newName,omitempty"`
	FolderName  string        `json:"folderName,omitempty"`
	ParentPath  string        `json:"parentPath,omitempty"`
	SearchTerm  string        `json:"searchTerm,omitempty"`
	ErrorType   string        `json:"errorType,omitempty"`
	Message     string        `json:"message,omitempty"`
}

// Preview is the human-readable confirmation text for a staged operation.
type Preview struct {
	Description string   `json:"description"`
	Warnings    []string `json:"warnings"`
}

// StagedOperation is the record persisted by the operation store.
// It is immutable after staging; the only mutation is deletion.
type StagedOperation struct {
	OperationId          string           `json:"operationId"`
	Command              string           `json:"command"`
	Context              OperationContext `json:"context"`
	Operation            Operation        `json:"operation"`
	RequiresConfirmation bool             `json:"requiresConfirmation"`
	RiskLevel            RiskLevel        `json:"riskLevel"`
	Preview              Preview          `json:"preview"`
	UserId               uint             `json:"userId"`
	CreatedAt            time.Time        `json:"createdAt"`
}

// NewOperationId mints an id for a storable operation.
func NewOperationId() string {
	return "op-" + uuid.NewString()
}

// NewErrorId mints an id for an error response. Error operations are never
// stored; the prefix exists for client-side logging only.
func NewErrorId() string {
	return "error-" + uuid.NewString()
}
