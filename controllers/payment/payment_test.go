package paymentControllers

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gdb, mock
}

func TestStoreStripeRefs(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsCustomerAndIntent", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := storeStripeRefs(ctx, db, 42, "cus_123", "pi_456")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SurfacesWriteFailure", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		// The payment sheet must not be returned when the intent reference
		// is lost; the webhook could never confirm the charge.
		err := storeStripeRefs(ctx, db, 42, "cus_123", "pi_456")
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
