// Package cli provides the command-line interface for the itemscrape application.
package cli

import (
	"sync"

	"github.com/spf13/cobra"

	"github.com/law-makers/itemscrape/internal/app"
)

// The running Application. Commands execute one at a time, so a single
// slot guarded by a mutex is enough.
var (
	appMu     sync.Mutex
	globalApp *app.Application
)

// SetApp stores the Application for the running command
func SetApp(cmd *cobra.Command, a *app.Application) {
	if cmd == nil {
		return
	}
	appMu.Lock()
	defer appMu.Unlock()
	globalApp = a
}

// GetAppFromCmd retrieves the Application stored for cmd. It returns nil
// before PersistentPreRunE has run.
func GetAppFromCmd(cmd *cobra.Command) *app.Application {
	if cmd == nil {
		return nil
	}
	appMu.Lock()
	defer appMu.Unlock()
	return globalApp
}
