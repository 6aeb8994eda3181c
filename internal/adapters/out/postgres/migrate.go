package postgres

import (
	"pressing/internal/adapters/out/postgres/catalogrepo"
	"pressing/internal/adapters/out/postgres/directoryrepo"
	"pressing/internal/adapters/out/postgres/orderrepo"
	"pressing/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema of every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&directoryrepo.PressingDTO{},
		&directoryrepo.PlantDTO{},
		&directoryrepo.ClientDTO{},
		&catalogrepo.CatalogItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StatusHistoryDTO{},
		&orderrepo.PaymentDTO{},
		&orderrepo.ReferenceSequenceDTO{},
		&outboxrepo.OutboxMessageDTO{},
	)
}
