package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/odooclock/internal/client/config"
	"github.com/dmitrijs2005/odooclock/internal/client/gateway"
	"github.com/dmitrijs2005/odooclock/internal/client/models"
	"github.com/dmitrijs2005/odooclock/internal/client/secretstore"
	"github.com/dmitrijs2005/odooclock/internal/client/services"
	"github.com/dmitrijs2005/odooclock/internal/client/session"
	"github.com/dmitrijs2005/odooclock/internal/filex"
	"github.com/dmitrijs2005/odooclock/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionManager is the session surface the App needs. *session.Manager
// satisfies it; tests substitute fakes.
type sessionManager interface {
	Authenticate(ctx context.Context, profile models.Profile) (int64, error)
	Reconnect(ctx context.Context) (int64, error)
	Logout(ctx context.Context) error
	IsAuthenticated() bool
	Session() *session.Session
}

type attendanceAPI interface {
	TodayStatus(ctx context.Context, employeeID int64) (services.Status, error)
	TogglePunch(ctx context.Context, employeeID int64) (services.Transition, error)
	History(ctx context.Context, employeeID int64, limit int) ([]models.Attendance, error)
}

type partnerAPI interface {
	List(ctx context.Context, opts services.PartnerListOptions) ([]models.Partner, error)
	SearchByName(ctx context.Context, term string, limit int) ([]models.Partner, error)
}

type App struct {
	config     *config.Config
	session    sessionManager
	attendance attendanceAPI
	partners   partnerAPI
	log        logging.Logger
	reader     *bufio.Reader
	userName   string
}

// NewApp builds the client: it opens the local vault, constructs the session
// manager on top of it, and layers the dataset gateway and services on the
// session. Every run gets a unique run_id in its log records.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {

	ctx := context.Background()
	log = log.With("run_id", uuid.NewString())

	if _, err := filex.EnsureParentDir(c.VaultPath); err != nil {
		return nil, err
	}

	db, err := secretstore.InitDatabase(ctx, c.VaultPath)
	if err != nil {
		log.Error(ctx, "error initializing vault", "path", c.VaultPath, "err", err)
		return nil, err
	}
	store := secretstore.NewSQLiteStore(db)

	manager := session.NewManager(store, log)
	gw := gateway.New(manager, log)

	return &App{
		config:     c,
		session:    manager,
		attendance: services.NewAttendanceService(gw, log),
		partners:   services.NewPartnerService(gw, log),
		log:        log,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// Run tries to resume the saved session, starts the background status
// watcher, and enters the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	if _, err := a.session.Reconnect(ctx); err != nil {
		a.log.Debug(ctx, "no session resumed", "err", err)
		printlnFn("Not connected. Type 'login' to authenticate.")
	} else {
		printlnFn("Reconnected as", a.config.Username)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartStatusWatcher(watchCtx, a.config.StatusRefreshInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(offline)"
	}
	if a.userName != "" {
		return "(" + a.userName + ")"
	}
	return "(online)"
}

// StartStatusWatcher periodically refreshes today's attendance status so the
// prompt reflects punches made from other devices. It exits when ctx is done.
func (a *App) StartStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.isLoggedIn() || a.config.EmployeeID == 0 {
				continue
			}
			refreshCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			status, err := a.attendance.TodayStatus(refreshCtx, a.config.EmployeeID)
			cancel()

			if err != nil {
				a.log.Warn(ctx, "status refresh failed", "err", err)
				continue
			}
			a.log.Debug(ctx, "status refreshed", "state", status.State)

		case <-ctx.Done():
			return
		}
	}
}
