package specification

import "gorm.io/gorm"

type ByOccupationCode struct {
	Code string
}

func (s ByOccupationCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}

type ByDivisionName struct {
	DivisionName string
}

func (s ByDivisionName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("division_name = ?", s.DivisionName)
}
