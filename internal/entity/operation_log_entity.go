package entity

import (
	"time"

	"github.com/google/uuid"
)

type OperationAction string

const (
	OperationActionStaged    OperationAction = "staged"
	OperationActionExecuted  OperationAction = "executed"
	OperationActionCancelled OperationAction = "cancelled"
	OperationActionUndone    OperationAction = "undone"
)

// OperationLog is the durable audit trail of the staging lifecycle. The
// staged records themselves live in the TTL store; this table is what
// survives after they expire.
type OperationLog struct {
	Id          uuid.UUID
	OperationId string
	UserId      uint
	Kind        string
	Action      OperationAction
	Payload     map[string]interface{}
	CreatedAt   time.Time
}
