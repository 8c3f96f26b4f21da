package entity

import "time"

type Occupation struct {
	Code           string
	FamilyName     string
	DivisionName   string
	Title          string
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
}
