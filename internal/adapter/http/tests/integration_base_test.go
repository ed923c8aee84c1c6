package tests

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	dbadapter "taskorganizer/internal/adapter/db"
)

// IntegrationSuiteBase runs against an in-memory SQLite store unless a
// suite provides another connect function.
type IntegrationSuiteBase struct {
	suite.Suite

	DB      *sqlx.DB
	connect func() (*sqlx.DB, func(), error)
	cleanup func()
}

func (s *IntegrationSuiteBase) SetupSuite() {
	connect := s.connect
	if connect == nil {
		connect = connectSQLite
	}

	db, cleanup, err := connect()
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect: %v", err)
	}
	s.DB = db
	s.cleanup = cleanup
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}
	if s.cleanup != nil {
		s.cleanup()
	}
}

func (s *IntegrationSuiteBase) ResetDatabase() {
	for _, table := range []string{"tasks", "daily_reviews", "weekly_reviews"} {
		_, err := s.DB.Exec("DROP TABLE IF EXISTS " + table)
		s.Require().NoError(err)
	}
	s.Require().NoError(dbadapter.Migrate(context.Background(), s.DB))
}

func connectSQLite() (*sqlx.DB, func(), error) {
	db, err := dbadapter.ConnectLocal(":memory:")
	return db, nil, err
}
