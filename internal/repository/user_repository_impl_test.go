package repository

import (
	"regexp"
	"testing"

	"go-clinic-access/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestUserRepository_FindByID(t *testing.T) {
	repo := NewUserRepository()
	id := uuid.New()

	t.Run("loads account with role and permissions", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "role_id", "email", "full_name", "is_active", "permissions"}).
				AddRow(id.String(), entity.RoleIDReceptionist, "front@clinic.test", "Front Desk", true, []byte(`{"suppliers":false}`)))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "roles" WHERE "roles"."id" = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "role_name"}).
				AddRow(entity.RoleIDReceptionist, entity.RoleReceptionist))

		user, err := repo.FindByID(db, id)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, entity.RoleReceptionist, user.Role.RoleName)
		assert.Equal(t, entity.Permissions{"suppliers": false}, user.Permissions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null permissions scan to nil", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "role_id", "email", "full_name", "is_active", "permissions"}).
				AddRow(id.String(), entity.RoleIDReceptionist, "legacy@clinic.test", "Legacy", true, nil))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "roles" WHERE "roles"."id" = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "role_name"}).
				AddRow(entity.RoleIDReceptionist, entity.RoleReceptionist))

		user, err := repo.FindByID(db, id)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Nil(t, user.Permissions)
	})

	t.Run("missing account", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		user, err := repo.FindByID(db, id)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestPermissions_ValueScan(t *testing.T) {
	value, err := entity.Permissions(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	value, err = entity.Permissions{}.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), value)

	var scanned entity.Permissions
	require.NoError(t, scanned.Scan([]byte(`{}`)))
	assert.NotNil(t, scanned)
	assert.Empty(t, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)

	assert.ErrorIs(t, scanned.Scan(42), entity.ErrUnsupportedJSONB)
}

func TestUserRepository_UpdatePermissions(t *testing.T) {
	repo := NewUserRepository()
	id := uuid.New()

	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "permissions"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdatePermissions(db, id, entity.Permissions{"inventory": false})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
