package usecase

import (
	"io"
	"regexp"
	"testing"
	"time"

	"go-clinic-access/internal/authz"
	"go-clinic-access/internal/domain/entity"
	"go-clinic-access/internal/infrastructure/metrics"
	"go-clinic-access/internal/repository"
	"go-clinic-access/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	mock     sqlmock.Sqlmock
	mr       *miniredis.Miniredis
	redis    *redis.Client
	log      *logrus.Logger
	engine   *authz.Engine
	metrics  *metrics.Metrics
	sessions SessionUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &testEnv{
		db:      db,
		mock:    mock,
		mr:      mr,
		redis:   client,
		log:     log,
		engine:  authz.NewEngine(authz.DefaultPolicy()),
		metrics: metrics.New(prometheus.NewRegistry()),
	}
	env.sessions = NewSessionUsecase(
		db,
		log,
		env.engine,
		repository.NewUserRepository(),
		service.NewIdentityCacheService(client, time.Minute),
		service.NewSessionStore(client),
		service.NewAuditService(log, repository.NewAuditLogRepository()),
		env.metrics,
	)
	return env
}

var roleIDs = map[string]int{
	entity.RoleAdmin:        entity.RoleIDAdmin,
	entity.RoleDentist:      entity.RoleIDDentist,
	entity.RoleReceptionist: entity.RoleIDReceptionist,
	entity.RoleUser:         entity.RoleIDUser,
}

// expectUser queues the two queries FindByID issues (user, then role).
func (e *testEnv) expectUser(id uuid.UUID, role string, active bool, permissions []byte) {
	roleID := roleIDs[role]
	if roleID == 0 {
		roleID = 99
	}
	var perms interface{}
	if permissions != nil {
		perms = permissions
	}

	e.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role_id", "email", "full_name", "is_active", "permissions"}).
			AddRow(id.String(), roleID, "staff@clinic.test", "Staff Member", active, perms))
	e.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "roles" WHERE "roles"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role_name"}).AddRow(roleID, role))
}

func (e *testEnv) expectAuditInsert() {
	e.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "audit_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
}
