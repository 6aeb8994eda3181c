package testdb

import (
	"testing"

	"pressing/internal/adapters/out/postgres/directoryrepo"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Reference data shared by the sqlite-backed tests.
const (
	PressingID      int64 = 3
	OtherPressingID int64 = 4
	PlantID         int64 = 7
	ClientID        int64 = 11
	OtherClientID   int64 = 12
)

// SeedDirectory inserts two pressings (the first with a minimum order amount
// of 1000), one plant and one client per pressing.
func SeedDirectory(t *testing.T, db *gorm.DB) {
	t.Helper()

	minimum := decimal.NewFromInt(1000)
	require.NoError(t, db.Create(&[]directoryrepo.PressingDTO{
		{ID: PressingID, Name: "Pressing Akwa", MinimumOrderAmount: &minimum},
		{ID: OtherPressingID, Name: "Pressing Bonapriso"},
	}).Error)
	require.NoError(t, db.Create(&directoryrepo.PlantDTO{ID: PlantID, Name: "Plant Bassa"}).Error)
	require.NoError(t, db.Create(&[]directoryrepo.ClientDTO{
		{ID: ClientID, PressingID: PressingID, FullName: "Client One"},
		{ID: OtherClientID, PressingID: OtherPressingID, FullName: "Client Two"},
	}).Error)
}
