package specification

import "gorm.io/gorm"

// ByStage filters checkpoints by workflow stage.
type ByStage struct {
	Stage string
}

func (s ByStage) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("stage = ?", s.Stage)
}
