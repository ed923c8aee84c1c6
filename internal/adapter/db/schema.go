package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskorganizer/internal/config"
)

const createTasksTableMySQL = `
CREATE TABLE IF NOT EXISTS tasks (
  id VARCHAR(64) NOT NULL PRIMARY KEY,
  title VARCHAR(500) NOT NULL,
  description TEXT NULL,
  context VARCHAR(255) NULL,
  project VARCHAR(255) NULL,
  tags TEXT NOT NULL,
  source VARCHAR(16) NOT NULL DEFAULT 'manual',
  git_commit_sha VARCHAR(64) NULL,
  git_commit_message TEXT NULL,
  status VARCHAR(16) NOT NULL DEFAULT 'pending',
  priority VARCHAR(16) NOT NULL DEFAULT 'medium',
  due_date DATETIME(6) NULL,
  estimated_duration INT NULL,
  actual_duration INT NULL,
  is_timer_running BOOLEAN NOT NULL DEFAULT FALSE,
  started_at DATETIME(6) NULL,
  ended_at DATETIME(6) NULL,
  completed_at DATETIME(6) NULL,
  ai_analyzed BOOLEAN NOT NULL DEFAULT FALSE,
  created_at DATETIME(6) NOT NULL,
  updated_at DATETIME(6) NOT NULL,
  INDEX idx_tasks_created_at (created_at),
  INDEX idx_tasks_status (status),
  INDEX idx_tasks_git_commit_sha (git_commit_sha)
)`

const createDailyReviewsTableMySQL = `
CREATE TABLE IF NOT EXISTS daily_reviews (
  review_date VARCHAR(10) NOT NULL PRIMARY KEY,
  summary TEXT NOT NULL,
  insights TEXT NOT NULL,
  total_tasks INT NOT NULL DEFAULT 0,
  completed_tasks INT NOT NULL DEFAULT 0,
  total_time_spent INT NOT NULL DEFAULT 0,
  time_by_project TEXT NOT NULL,
  time_by_tag TEXT NOT NULL,
  suggestions TEXT NOT NULL,
  created_at DATETIME(6) NOT NULL,
  updated_at DATETIME(6) NOT NULL
)`

const createWeeklyReviewsTableMySQL = `
CREATE TABLE IF NOT EXISTS weekly_reviews (
  id VARCHAR(64) NOT NULL PRIMARY KEY,
  start_date VARCHAR(10) NOT NULL,
  end_date VARCHAR(10) NOT NULL,
  summary TEXT NOT NULL,
  insights TEXT NOT NULL,
  total_tasks INT NOT NULL DEFAULT 0,
  completed_tasks INT NOT NULL DEFAULT 0,
  created_at DATETIME(6) NOT NULL,
  updated_at DATETIME(6) NOT NULL,
  UNIQUE KEY uq_weekly_reviews_range (start_date, end_date)
)`

const createTasksTablePostgres = `
CREATE TABLE IF NOT EXISTS tasks (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  context TEXT,
  project TEXT,
  tags TEXT NOT NULL DEFAULT '[]',
  source TEXT NOT NULL DEFAULT 'manual',
  git_commit_sha TEXT,
  git_commit_message TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  priority TEXT NOT NULL DEFAULT 'medium',
  due_date TIMESTAMPTZ,
  estimated_duration INTEGER,
  actual_duration INTEGER,
  is_timer_running BOOLEAN NOT NULL DEFAULT FALSE,
  started_at TIMESTAMPTZ,
  ended_at TIMESTAMPTZ,
  completed_at TIMESTAMPTZ,
  ai_analyzed BOOLEAN NOT NULL DEFAULT FALSE,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
)`

const createDailyReviewsTablePostgres = `
CREATE TABLE IF NOT EXISTS daily_reviews (
  review_date TEXT PRIMARY KEY,
  summary TEXT NOT NULL DEFAULT '',
  insights TEXT NOT NULL DEFAULT '[]',
  total_tasks INTEGER NOT NULL DEFAULT 0,
  completed_tasks INTEGER NOT NULL DEFAULT 0,
  total_time_spent INTEGER NOT NULL DEFAULT 0,
  time_by_project TEXT NOT NULL DEFAULT '{}',
  time_by_tag TEXT NOT NULL DEFAULT '{}',
  suggestions TEXT NOT NULL DEFAULT '[]',
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
)`

const createWeeklyReviewsTablePostgres = `
CREATE TABLE IF NOT EXISTS weekly_reviews (
  id TEXT PRIMARY KEY,
  start_date TEXT NOT NULL,
  end_date TEXT NOT NULL,
  summary TEXT NOT NULL DEFAULT '',
  insights TEXT NOT NULL DEFAULT '[]',
  total_tasks INTEGER NOT NULL DEFAULT 0,
  completed_tasks INTEGER NOT NULL DEFAULT 0,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL,
  UNIQUE (start_date, end_date)
)`

const createTasksTableSQLite = `
CREATE TABLE IF NOT EXISTS tasks (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  context TEXT,
  project TEXT,
  tags TEXT NOT NULL DEFAULT '[]',
  source TEXT NOT NULL DEFAULT 'manual',
  git_commit_sha TEXT,
  git_commit_message TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  priority TEXT NOT NULL DEFAULT 'medium',
  due_date DATETIME,
  estimated_duration INTEGER,
  actual_duration INTEGER,
  is_timer_running INTEGER NOT NULL DEFAULT 0,
  started_at DATETIME,
  ended_at DATETIME,
  completed_at DATETIME,
  ai_analyzed INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL
)`

const createDailyReviewsTableSQLite = `
CREATE TABLE IF NOT EXISTS daily_reviews (
  review_date TEXT PRIMARY KEY,
  summary TEXT NOT NULL DEFAULT '',
  insights TEXT NOT NULL DEFAULT '[]',
  total_tasks INTEGER NOT NULL DEFAULT 0,
  completed_tasks INTEGER NOT NULL DEFAULT 0,
  total_time_spent INTEGER NOT NULL DEFAULT 0,
  time_by_project TEXT NOT NULL DEFAULT '{}',
  time_by_tag TEXT NOT NULL DEFAULT '{}',
  suggestions TEXT NOT NULL DEFAULT '[]',
  created_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL
)`

const createWeeklyReviewsTableSQLite = `
CREATE TABLE IF NOT EXISTS weekly_reviews (
  id TEXT PRIMARY KEY,
  start_date TEXT NOT NULL,
  end_date TEXT NOT NULL,
  summary TEXT NOT NULL DEFAULT '',
  insights TEXT NOT NULL DEFAULT '[]',
  total_tasks INTEGER NOT NULL DEFAULT 0,
  completed_tasks INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL,
  UNIQUE (start_date, end_date)
)`

const (
	createTasksCreatedAtIndex = `CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks (created_at)`
	createTasksStatusIndex    = `CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status)`
	createTasksCommitIndex    = `CREATE INDEX IF NOT EXISTS idx_tasks_git_commit_sha ON tasks (git_commit_sha)`
)

var schemas = map[string][]string{
	config.DriverMySQL: {
		createTasksTableMySQL,
		createDailyReviewsTableMySQL,
		createWeeklyReviewsTableMySQL,
	},
	config.DriverPostgres: {
		createTasksTablePostgres,
		createDailyReviewsTablePostgres,
		createWeeklyReviewsTablePostgres,
		createTasksCreatedAtIndex,
		createTasksStatusIndex,
		createTasksCommitIndex,
	},
	config.DriverSQLite: {
		createTasksTableSQLite,
		createDailyReviewsTableSQLite,
		createWeeklyReviewsTableSQLite,
		createTasksCreatedAtIndex,
		createTasksStatusIndex,
		createTasksCommitIndex,
	},
}

// Migrate creates the tables and indexes for the connection's dialect. It is
// safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements, ok := schemas[db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}
	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("migrate %s: %w", db.DriverName(), err)
		}
	}
	return nil
}
