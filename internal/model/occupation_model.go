package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type Occupation struct {
	Code           string          `gorm:"type:text;primaryKey"`
	FamilyName     string          `gorm:"type:text;not null"`
	DivisionName   string          `gorm:"type:text;not null;index"`
	Title          string          `gorm:"type:text;not null"`
	Document       string          `gorm:"type:text;not null"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (Occupation) TableName() string {
	return "occupations"
}
