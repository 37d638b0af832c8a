package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type IntegrationValidation struct {
	Id               uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IntegrationPoint string            `gorm:"type:varchar(100);not null;index"`
	SessionId        uuid.UUID         `gorm:"type:uuid;not null;index"`
	Attempt          string            `gorm:"type:varchar(20);not null;default:'primary'"`
	Expected         datatypes.JSONMap `gorm:"type:jsonb"`
	Actual           datatypes.JSONMap `gorm:"type:jsonb"`
	Passed           bool              `gorm:"not null;default:false"`
	Score            float64           `gorm:"type:numeric(4,3);not null;default:0"`
	ResponseTimeMs   int64             `gorm:"not null;default:0"`
	ErrorMessage     *string           `gorm:"type:text"`
	CreatedAt        time.Time         `gorm:"default:now();not null;index"`
}

func (IntegrationValidation) TableName() string {
	return "integration_validations"
}

// KnowledgePassage rows carry a 768-dim embedding (gemini/nomic default) for
// cosine retrieval. Seeded via cmd/seed.
type KnowledgePassage struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Topic     string          `gorm:"type:varchar(100);not null;index"`
	Content   string          `gorm:"type:text;not null"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt time.Time       `gorm:"default:now();not null"`
}

func (KnowledgePassage) TableName() string {
	return "knowledge_passages"
}
