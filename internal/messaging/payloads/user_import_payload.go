package payloads

import (
	"github.com/GoArmGo/UserManager/internal/domain"
	"github.com/google/uuid"
)

// UserImportPayload представляет задачу массового импорта пользователей
// через RabbitMQ.
type UserImportPayload struct {
	JobID uuid.UUID     `json:"job_id"`
	Users []domain.User `json:"users"`
}
