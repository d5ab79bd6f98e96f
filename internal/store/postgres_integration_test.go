//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/gdg-garage/registration-api/internal/database"
	"github.com/gdg-garage/registration-api/internal/models"
	"github.com/gdg-garage/registration-api/internal/store"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	store     *store.GormStore
	ctx       context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx, "postgres:16-alpine",
		postgres.WithDatabase("registrations"),
		postgres.WithUsername("registrations"),
		postgres.WithPassword("registrations"),
		postgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := database.OpenPostgres(dsn)
	s.Require().NoError(err)
	s.Require().NoError(db.Exec("TRUNCATE registrations").Error)
	s.store = store.NewGormStore(db)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	s.NoError(testcontainers.TerminateContainer(s.container))
}

func (s *PostgresStoreSuite) TestLifecycle() {
	reg, err := s.store.Insert(s.ctx, models.RegistrationFields{
		FullName:    "Jane Doe",
		Email:       "jane@x.com",
		Semester:    "s3",
		PhoneNumber: "9876543210",
		Branch:      "CS",
		College:     "Springfield, State",
	})
	s.Require().NoError(err)

	id, ok, err := s.store.FindByPhoneOrEmail(s.ctx, "0000000000", "jane@x.com")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(reg.ID, id)

	_, err = s.store.Insert(s.ctx, models.RegistrationFields{
		FullName:    "Jane Again",
		Email:       "jane@x.com",
		Semester:    "s4",
		PhoneNumber: "1234567890",
		Branch:      "CS",
		College:     "MIT",
	})
	s.Require().ErrorIs(err, store.ErrDuplicate)

	regs, err := s.store.ListFiltered(s.ctx, "Springfield")
	s.Require().NoError(err)
	s.Require().Len(regs, 1)
	s.Equal(reg.ID, regs[0].ID)
}
