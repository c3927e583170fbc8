package repository

import (
	"regexp"
	"testing"

	"go-clinic-access/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleRepository_FindAll(t *testing.T) {
	repo := NewRoleRepository()
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "roles" ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role_name"}).
			AddRow(entity.RoleIDAdmin, entity.RoleAdmin).
			AddRow(entity.RoleIDDentist, entity.RoleDentist))

	roles, err := repo.FindAll(t.Context(), db)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, entity.RoleDentist, roles[1].RoleName)
}
