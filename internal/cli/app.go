package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/hkaraca/rmosdesk/internal/api"
	"github.com/hkaraca/rmosdesk/internal/blacklist"
	"github.com/hkaraca/rmosdesk/internal/config"
	"github.com/hkaraca/rmosdesk/internal/forecast"
	"github.com/hkaraca/rmosdesk/internal/logging"
	"github.com/hkaraca/rmosdesk/internal/notify"
	"github.com/hkaraca/rmosdesk/internal/session"
	"github.com/hkaraca/rmosdesk/internal/table"
)

// App is the interactive client: one session, one API client, one controller
// per page, all reading commands from reader and writing to out.
type App struct {
	config   *config.Config
	log      logging.Logger
	session  *session.Store
	notifier *notify.Notifier
	client   *api.Client

	blacklistCtl *table.Controller
	editor       *blacklist.Editor
	forecastCtl  *table.Controller

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the application together from config.
func NewApp(cfg *config.Config) *App {
	a := &App{
		config: cfg,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	a.log = logging.NewTextLogger(os.Stderr, cfg.Verbose)
	a.session = session.NewStore(cfg.SessionFile)
	a.notifier = notify.New(cfg.NotificationTTL, a.printToast)
	a.client = api.NewClient(cfg.APIBaseURL, cfg.AuthBaseURL, a.session, a.log, cfg.RequestTimeout,
		api.WithSessionExpiredHook(a.onSessionExpired))

	a.blacklistCtl = blacklist.NewController(a.client, a.log)
	a.editor = blacklist.NewEditor(a.client, a.notifier, a.blacklistCtl)
	a.forecastCtl = forecast.NewController(a.client, a.log)
	return a
}

// printToast is the notifier sink: messages print as they appear; the
// auto-clear stays silent (a terminal cannot un-print).
func (a *App) printToast(m *notify.Message) {
	if m == nil {
		return
	}
	switch m.Kind {
	case notify.KindSuccess:
		fmt.Fprintf(a.out, "[ok] %s\n", m.Text)
	default:
		fmt.Fprintf(a.out, "[error] %s\n", m.Text)
	}
}

// onSessionExpired is the 401 hook: the one place that reacts to expiry.
// The session is already cleared; the page loops notice on their next
// prompt and fall back to the logged-out state.
func (a *App) onSessionExpired() {
	a.notifier.Error("session expired, please log in again")
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return "(auth)"
	}
	return "(guest)"
}
