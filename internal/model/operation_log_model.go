package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OperationLog struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperationId string         `gorm:"type:varchar(64);not null;index"`
	UserId      uint           `gorm:"not null;index"`
	Kind        string         `gorm:"type:varchar(32);not null"`
	Action      string         `gorm:"type:varchar(16);not null"`
	Payload     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (OperationLog) TableName() string {
	return "operation_logs"
}
