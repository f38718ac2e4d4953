package dto

import (
	"time"

	"ai-filepilot-be/internal/executor"
	"ai-filepilot-be/pkg/opstore"
	"ai-filepilot-be/pkg/retrieval"
)

type StageOperationRequest struct {
	Command string                   `json:"command" validate:"required"`
	Context opstore.OperationContext `json:"context"`
}

type StageOperationResponse struct {
	OperationId          string            `json:"operationId"`
	Operation            opstore.Operation `json:"operation"`
	RequiresConfirmation bool              `json:"requiresConfirmation"`
	RiskLevel            opstore.RiskLevel `json:"riskLevel"`
	Preview              opstore.Preview   `json:"preview"`
	ExpiresAt            *time.Time        `json:"expiresAt,omitempty"`
}

type ExecuteOperationRequest struct {
	Confirmed     bool                   `json:"confirmed"`
	UserOptions   map[string]interface{} `json:"userOptions,omitempty"`
	ExecutionTime *time.Time             `json:"executionTime,omitempty"`
}

type ExecuteOperationResponse struct {
	OperationId   string                `json:"operationId"`
	Message       string                `json:"message"`
	UndoAvailable bool                  `json:"undoAvailable"`
	UndoDeadline  *time.Time            `json:"undoDeadline,omitempty"`
	Results       []executor.ItemResult `json:"results,omitempty"`
	SearchResults []retrieval.Result    `json:"searchResults,omitempty"`
	Summaries     []executor.Summary    `json:"summaries,omitempty"`
}

type CancelOperationResponse struct {
	OperationId string `json:"operationId"`
	Cancelled   bool   `json:"cancelled"`
}

type UndoOperationResponse struct {
	OperationId string                `json:"operationId"`
	Message     string                `json:"message"`
	Results     []executor.ItemResult `json:"results,omitempty"`
}

type OperationHealthResponse struct {
	Status   string `json:"status"`
	Store    string `json:"store"`
	Database string `json:"database"`
}
