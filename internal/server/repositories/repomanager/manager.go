package repomanager

import (
	"context"
	"database/sql"

	"github.com/orionapp/companion/internal/dbx"
	"github.com/orionapp/companion/internal/server/repositories/chatmessages"
	"github.com/orionapp/companion/internal/server/repositories/moodlogs"
	"github.com/orionapp/companion/internal/server/repositories/reminders"
	"github.com/orionapp/companion/internal/server/repositories/reviews"
	"github.com/orionapp/companion/internal/server/repositories/todos"
	"github.com/orionapp/companion/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Todos(db dbx.DBTX) todos.Repository
	Reviews(db dbx.DBTX) reviews.Repository
	Reminders(db dbx.DBTX) reminders.Repository
	MoodLogs(db dbx.DBTX) moodlogs.Repository
	ChatMessages(db dbx.DBTX) chatmessages.Repository
}
