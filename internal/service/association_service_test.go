package service

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/adnane-lakhmaisse/OptiStock/internal/apperr"
	"github.com/adnane-lakhmaisse/OptiStock/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newAssociationTestService(t *testing.T) (AssociationService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	svc := NewAssociationService(repository.NewAssociationRepo(gormDB), zap.NewNop())
	return svc, mock, mockDB
}

func TestAssociationService_EnsureAssociation(t *testing.T) {
	t.Run("creates the association on first sight", func(t *testing.T) {
		svc, mock, mockDB := newAssociationTestService(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "associations" WHERE email = \$1`).
			WithArgs("new@asso.org", 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectExec(`INSERT INTO "associations"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := svc.EnsureAssociation("new@asso.org", "Les Restos")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("is a no-op when the association already exists", func(t *testing.T) {
		svc, mock, mockDB := newAssociationTestService(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "associations" WHERE email = \$1`).
			WithArgs("known@asso.org", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name"}).
				AddRow(uuid.New(), "known@asso.org", "Existing Name"))

		err := svc.EnsureAssociation("known@asso.org", "Another Name")

		assert.NoError(t, err)
		// No insert, no update: an existing name is never touched
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("is a no-op on empty email", func(t *testing.T) {
		svc, mock, mockDB := newAssociationTestService(t)
		defer mockDB.Close()

		err := svc.EnsureAssociation("", "Nameless")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips creation when no name is known yet", func(t *testing.T) {
		svc, mock, mockDB := newAssociationTestService(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "associations" WHERE email = \$1`).
			WithArgs("new@asso.org", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		err := svc.EnsureAssociation("new@asso.org", "")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAssociationService_GetByEmail(t *testing.T) {
	t.Run("resolves the tenant for an email", func(t *testing.T) {
		svc, mock, mockDB := newAssociationTestService(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "associations" WHERE email = \$1`).
			WithArgs("known@asso.org", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name"}).
				AddRow(id, "known@asso.org", "Les Restos"))

		association, err := svc.GetByEmail("known@asso.org")

		require.NoError(t, err)
		assert.Equal(t, id, association.ID)
		assert.Equal(t, "Les Restos", association.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns NotFound for an unknown email", func(t *testing.T) {
		svc, mock, mockDB := newAssociationTestService(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "associations" WHERE email = \$1`).
			WithArgs("ghost@asso.org", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := svc.GetByEmail("ghost@asso.org")

		assert.Equal(t, apperr.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns NotFound for an empty email without querying", func(t *testing.T) {
		svc, mock, mockDB := newAssociationTestService(t)
		defer mockDB.Close()

		_, err := svc.GetByEmail("")

		assert.Equal(t, apperr.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hides store errors behind StoreFailure", func(t *testing.T) {
		svc, mock, mockDB := newAssociationTestService(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "associations" WHERE email = \$1`).
			WithArgs("known@asso.org", 1).
			WillReturnError(errors.New("connection refused"))

		_, err := svc.GetByEmail("known@asso.org")

		assert.Equal(t, apperr.ErrStoreFailure, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
