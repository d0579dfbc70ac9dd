package service

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/adnane-lakhmaisse/OptiStock/internal/apperr"
	"github.com/adnane-lakhmaisse/OptiStock/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newCatalogTestService(t *testing.T) (CatalogService, sqlmock.Sqlmock, *sql.DB) {
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

	svc := NewCatalogService(
		repository.NewCategoryRepo(gormDB),
		repository.NewProductRepo(gormDB),
		gormDB,
		zap.NewNop(),
	)
	return svc, mock, mockDB
}

func TestCatalogService_CreateCategory(t *testing.T) {
	associationID := uuid.New()

	t.Run("creates a category scoped to the association", func(t *testing.T) {
		svc, mock, mockDB := newCatalogTestService(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "categories"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		category, err := svc.CreateCategory(associationID, &CategoryRequest{Name: "Dry goods"})

		require.NoError(t, err)
		assert.Equal(t, associationID, category.AssociationID)
		assert.NotEqual(t, uuid.Nil, category.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a missing name without querying", func(t *testing.T) {
		svc, mock, mockDB := newCatalogTestService(t)
		defer mockDB.Close()

		_, err := svc.CreateCategory(associationID, &CategoryRequest{Description: "no name"})

		var domainErr *apperr.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCatalogService_DeleteCategory(t *testing.T) {
	associationID := uuid.New()
	categoryID := uuid.New()

	t.Run("cascades to the category's products in one transaction", func(t *testing.T) {
		svc, mock, mockDB := newCatalogTestService(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		// Soft deletes: gorm turns Delete into UPDATE ... deleted_at
		mock.ExpectExec(`UPDATE "products" SET "deleted_at"=`).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`UPDATE "categories" SET "deleted_at"=`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := svc.DeleteCategory(associationID, categoryID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns NotFound and rolls back for a foreign category", func(t *testing.T) {
		svc, mock, mockDB := newCatalogTestService(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "products" SET "deleted_at"=`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`UPDATE "categories" SET "deleted_at"=`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := svc.DeleteCategory(associationID, categoryID)

		assert.Equal(t, apperr.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCatalogService_CreateProduct(t *testing.T) {
	associationID := uuid.New()
	categoryID := uuid.New()

	t.Run("rejects a category that is not in the tenant", func(t *testing.T) {
		svc, mock, mockDB := newCatalogTestService(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id = \$1 AND association_id = \$2`).
			WithArgs(categoryID, associationID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := svc.CreateProduct(associationID, &ProductRequest{
			Name:       "Rice",
			Quantity:   10,
			Unit:       "kg",
			CategoryID: categoryID,
		})

		assert.Equal(t, apperr.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates a product with its initial stock", func(t *testing.T) {
		svc, mock, mockDB := newCatalogTestService(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id = \$1 AND association_id = \$2`).
			WithArgs(categoryID, associationID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "association_id"}).
				AddRow(categoryID, "Dry goods", associationID))
		mock.ExpectExec(`INSERT INTO "products"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		product, err := svc.CreateProduct(associationID, &ProductRequest{
			Name:       "Rice",
			Price:      decimal.NewFromFloat(12.50),
			Quantity:   10,
			Unit:       "kg",
			CategoryID: categoryID,
		})

		require.NoError(t, err)
		assert.Equal(t, 10, product.Quantity)
		assert.Equal(t, associationID, product.AssociationID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a negative initial quantity", func(t *testing.T) {
		svc, mock, mockDB := newCatalogTestService(t)
		defer mockDB.Close()

		_, err := svc.CreateProduct(associationID, &ProductRequest{
			Name:       "Rice",
			Quantity:   -1,
			CategoryID: categoryID,
		})

		var domainErr *apperr.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	associationID := uuid.New()
	categoryID := uuid.New()
	productID := uuid.New()

	t.Run("updates descriptive fields but never quantity", func(t *testing.T) {
		svc, mock, mockDB := newCatalogTestService(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 AND association_id = \$2`).
			WithArgs(productID, associationID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "quantity", "unit", "category_id", "association_id"}).
				AddRow(productID, "Rice", 42, "kg", categoryID, associationID))
		mock.ExpectQuery(`SELECT \* FROM "categories"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "association_id"}).
				AddRow(categoryID, "Dry goods", associationID))
		// Same category in the request, so no ownership re-check runs.
		// Update keys are alphabetical; asserting the full SET clause
		// proves the quantity column is absent
		mock.ExpectExec(`UPDATE "products" SET "category_id"=\$1,"description"=\$2,"image_url"=\$3,"name"=\$4,"price"=\$5,"unit"=\$6,"updated_at"=\$7 WHERE`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		product, err := svc.UpdateProduct(associationID, productID, &ProductUpdateRequest{
			Name:       "Brown rice",
			Price:      decimal.NewFromFloat(14.00),
			Unit:       "kg",
			CategoryID: categoryID,
		})

		require.NoError(t, err)
		assert.Equal(t, "Brown rice", product.Name)
		assert.Equal(t, 42, product.Quantity) // untouched
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns NotFound for a product in another tenant", func(t *testing.T) {
		svc, mock, mockDB := newCatalogTestService(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 AND association_id = \$2`).
			WithArgs(productID, associationID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := svc.UpdateProduct(associationID, productID, &ProductUpdateRequest{
			Name:       "Rice",
			CategoryID: categoryID,
		})

		assert.Equal(t, apperr.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
