package events

import "time"

// Operation lifecycle event codes.
const (
	OperationStaged    = "OPERATION_STAGED"
	OperationExecuted  = "OPERATION_EXECUTED"
	OperationCancelled = "OPERATION_CANCELLED"
	OperationUndone    = "OPERATION_UNDONE"
)

// NewOperationEvent builds a lifecycle event for a staged operation.
func NewOperationEvent(eventType, operationId, kind string, userId uint) Event {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"operation_id": operationId,
			"kind":         kind,
			"user_id":      userId,
		},
		OccurredAt: time.Now(),
	}
}
