package postgres

import (
	"context"
	"testing"
	"time"

	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func productColumns() []string {
	return []string{"id", "name", "type", "sku", "image_url", "description", "quantity", "price", "created_at", "updated_at"}
}

func TestUserRepository_FindByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at", "updated_at"}).
			AddRow(int64(7), "alice", "$2a$10$digest", now, now))

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "$2a$10$digest", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at", "updated_at"}))

	user, err := repo.FindByUsername(context.Background(), "ghost")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByUsername(context.Background(), "alice")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
	assert.Equal(t, 500, appErr.HTTPCode())
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	user := &entity.User{Username: "alice", PasswordHash: "$2a$10$digest"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(42), user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "idx_users_username"})

	err := repo.Create(context.Background(), &entity.User{Username: "alice", PasswordHash: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestProductRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`INSERT INTO "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	product := &entity.Product{
		Name: "Phone", Type: "Electronics", SKU: "PHN-001",
		ImageURL: "https://example.com/phone.png", Description: "desc",
		Quantity: 5, Price: 199.99,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	assert.Equal(t, int64(3), product.ID)
	assert.Equal(t, "PHN-001", product.SKU)
	assert.Equal(t, int64(5), product.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create_ConstraintErrors(t *testing.T) {
	tests := []struct {
		name    string
		pgCode  string
		wantErr error
	}{
		{name: "duplicate sku", pgCode: pgerrcode.UniqueViolation, wantErr: domainerrors.ErrSKUAlreadyExists},
		{name: "negative quantity", pgCode: pgerrcode.CheckViolation, wantErr: domainerrors.ErrValidationFailed},
		{name: "null column", pgCode: pgerrcode.NotNullViolation, wantErr: domainerrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewProductRepository(db)

			mock.ExpectQuery(`INSERT INTO "products"`).WillReturnError(&pgconn.PgError{Code: tt.pgCode})

			err := repo.Create(context.Background(), &entity.Product{SKU: "PHN-001"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProductRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY id ASC LIMIT \$1 OFFSET \$2`).
		WillReturnRows(sqlmock.NewRows(productColumns()).
			AddRow(int64(11), "A", "t", "SKU-11", "u", "d", int64(1), 1.5, now, now).
			AddRow(int64(12), "B", "t", "SKU-12", "u", "d", int64(2), 2.5, now, now))

	products, err := repo.List(context.Background(), repository.ListOptions{Offset: 10, Limit: 10})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(11), products[0].ID)
	assert.Equal(t, int64(12), products[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_EmptyIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(sqlmock.NewRows(productColumns()))

	products, err := repo.List(context.Background(), repository.ListOptions{Offset: 0, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductRepository_FindByIDForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(productColumns()).
			AddRow(int64(5), "A", "t", "SKU-5", "u", "d", int64(9), 3.0, now, now))

	product, err := repo.FindByIDForUpdate(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(9), product.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).WillReturnRows(sqlmock.NewRows(productColumns()))

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestProductRepository_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantErr      error
	}{
		{name: "updated", rowsAffected: 1},
		{name: "missing row", rowsAffected: 0, wantErr: repository.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewProductRepository(db)

			mock.ExpectExec(`UPDATE "products" SET "quantity"=\$1`).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			err := repo.UpdateQuantity(context.Background(), 5, 12)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTransactionManager_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		return f.ProductRepo().UpdateQuantity(context.Background(), 1, 3)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.Execute(context.Background(), func(repository.RepositoryFactory) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollsBackOnPanic(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tm.Execute(context.Background(), func(repository.RepositoryFactory) error {
			panic("unexpected")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
