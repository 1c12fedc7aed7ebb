// Package cli implements the interactive operator console: a small REPL
// over the backend HTTP API with a persisted session marker.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/veritaslab/veritas/internal/client/api"
	"github.com/veritaslab/veritas/internal/client/config"
	"github.com/veritaslab/veritas/internal/client/session"
)

// backend is the slice of the API client the console commands use. The real
// api.Client satisfies it; tests provide a stub.
type backend interface {
	Register(ctx context.Context, operatorID string, passkey []byte) (*api.Session, error)
	Login(ctx context.Context, operatorID string, passkey []byte) (*api.Session, error)
	Logout(ctx context.Context) error
	SetToken(token string)
	Analyze(ctx context.Context, sub api.Submission) (*api.Investigation, error)
	List(ctx context.Context) ([]api.Investigation, error)
	Delete(ctx context.Context, id string) error
	Purge(ctx context.Context) (int64, error)
	RecentAudit(ctx context.Context, limit int) ([]api.AuditEntry, error)
	PresignUpload(ctx context.Context) (key, url string, err error)
}

type App struct {
	config   *config.Config
	client   backend
	sessions *session.Store
	session  *api.Session
	reader   *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config:   c,
		client:   api.NewClient(c.ServerBaseURL),
		sessions: session.NewStore(c.SessionDir),
		reader:   bufio.NewReader(os.Stdin),
	}
}

// restoreSession loads the persisted session marker, if any, and installs
// its token on the API client. Expired markers were already discarded by
// the store.
func (a *App) restoreSession() {
	s, err := a.sessions.Load()
	if err != nil {
		log.Printf("could not restore session: %v", err)
		return
	}
	if s == nil {
		return
	}
	a.session = s
	a.client.SetToken(s.Token)
	log.Printf("Restored session for %s", s.OperatorID)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) Run(ctx context.Context) {
	a.restoreSession()
	a.Root(ctx)
}
