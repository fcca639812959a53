package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/terraincognita07/quitpath/internal/config"
	"github.com/terraincognita07/quitpath/internal/db"
)

type PruneSessionsCmd struct {
	config.Storage `embed:""`
}

func (cmd *PruneSessionsCmd) Run() error {
	return RunPruneSessionsCommand(cmd.DBPath, time.Now(), os.Stdout)
}

// RunPruneSessionsCommand removes every session that expired at or before now.
func RunPruneSessionsCommand(dbPath string, now time.Time, out io.Writer) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	sessions := db.NewRepositories(database).Sessions
	removed, err := sessions.DeleteExpired(now)
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	remaining, err := sessions.Count()
	if err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}

	fmt.Fprintf(out, "✅ Removed %d expired sessions\n", removed)
	fmt.Fprintf(out, "Active sessions: %d\n", remaining)
	return nil
}
