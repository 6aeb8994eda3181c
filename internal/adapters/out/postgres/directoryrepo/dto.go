// Package directoryrepo reads the reference tables (pressings, plants and
// clients) the order workflow validates against. The service never writes them.
package directoryrepo

import "github.com/shopspring/decimal"

type PressingDTO struct {
	ID                 int64            `gorm:"primaryKey;autoIncrement:false"`
	Name               string           `gorm:"size:255;not null"`
	MinimumOrderAmount *decimal.Decimal `gorm:"type:numeric(14,2)"`
}

func (PressingDTO) TableName() string {
	return "pressings"
}

type PlantDTO struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"size:255;not null"`
}

func (PlantDTO) TableName() string {
	return "plants"
}

type ClientDTO struct {
	ID         int64  `gorm:"primaryKey;autoIncrement:false"`
	PressingID int64  `gorm:"not null;index"`
	FullName   string `gorm:"size:255;not null"`
}

func (ClientDTO) TableName() string {
	return "clients"
}
