package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dinebridge/dinebridge/internal/client/api"
	"github.com/dinebridge/dinebridge/internal/client/config"
	"github.com/dinebridge/dinebridge/internal/client/db"
	"github.com/dinebridge/dinebridge/internal/client/live"
	"github.com/dinebridge/dinebridge/internal/client/models"
	"github.com/dinebridge/dinebridge/internal/client/notify"
	"github.com/dinebridge/dinebridge/internal/client/services"
	"github.com/dinebridge/dinebridge/internal/client/session"
	"github.com/dinebridge/dinebridge/internal/client/storage"
	"github.com/dinebridge/dinebridge/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionIface is the slice of session.Manager the commands need.
// Tests provide lightweight fakes.
type sessionIface interface {
	Login(ctx context.Context, email, password string, remember bool) (*models.User, error)
	Logout(ctx context.Context)
	IsAuthenticated() bool
	CurrentUser() *models.User
}

type ordersIface interface {
	List(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, tableID string, items []models.OrderItem) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
}

type tablesIface interface {
	List(ctx context.Context) ([]models.Table, error)
	SetStatus(ctx context.Context, id string, status models.TableStatus) (*models.Table, error)
}

type menuIface interface {
	Categories(ctx context.Context) ([]models.MenuCategory, error)
	Items(ctx context.Context, categoryID string) ([]models.MenuItem, error)
}

type streamIface interface {
	Run(ctx context.Context, out chan<- *models.OrderEvent) error
}

// App holds the wired client stack and implements the REPL commands.
type App struct {
	config  *config.Config
	logger  logging.Logger
	session sessionIface
	orders  ordersIface
	tables  tablesIface
	menu    menuIface
	stream  streamIface

	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	view     string
	returnTo string
}

// credentialProxy breaks the construction cycle between the API client and
// the session manager: the client needs a token source at build time, but
// the manager is built on top of the client's auth service.
type credentialProxy struct {
	mu      sync.RWMutex
	manager *session.Manager
}

func (p *credentialProxy) bind(m *session.Manager) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.manager = m
}

func (p *credentialProxy) Token() (string, bool) {
	p.mu.RLock()
	m := p.manager
	p.mu.RUnlock()
	if m == nil {
		return "", false
	}
	return m.Token()
}

// consoleNavigator satisfies nav.Navigator for a terminal UI: instead of
// changing a route it tells the user to log back in and remembers where they
// were, so a successful login can point them back.
type consoleNavigator struct {
	app *App
}

func (n *consoleNavigator) ToLogin(returnTo string) {
	n.app.setReturnTo(returnTo)
	fmt.Fprintln(n.app.out, "Your session has expired, please log in again (type 'login').")
}

// NewApp builds the full client stack: local database, API client, session
// manager, domain services, and the live order stream.
func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	handle, err := db.Open(ctx, cfg.DatabaseFile)
	if err != nil {
		return nil, err
	}

	app := &App{
		config: cfg,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	creds := &credentialProxy{}
	client := api.New(api.Options{
		BaseURL:         cfg.APIBaseURL,
		Timeout:         cfg.RequestTimeout,
		MaxRetries:      cfg.MaxRetries,
		RetryDelay:      cfg.RetryDelay,
		WithCredentials: true,
	}, creds, notify.NewConsoleNotifier(os.Stderr, notify.DefaultBurstWindow), logger)

	manager := session.NewManager(
		services.NewAuthService(client),
		storage.NewSQLiteStore(handle),
		storage.NewMemoryStore(),
		&consoleNavigator{app: app},
		logger,
	)
	manager.SetLocationProvider(app.currentView)
	creds.bind(manager)
	client.SetUnauthorizedHook(manager.HandleUnauthorized)

	if err := manager.Restore(ctx); err != nil {
		logger.Warn(ctx, "could not restore previous session", "error", err)
	}

	app.session = manager
	app.orders = services.NewOrdersService(client)
	app.tables = services.NewTablesService(client)
	app.menu = services.NewMenuService(client)
	app.stream = live.NewStream(cfg.LiveEndpoint, creds, logger)

	return app, nil
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to DineBridge (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	u := a.session.CurrentUser()
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", u.Email)
}

func (a *App) setView(view string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view = view
}

func (a *App) currentView() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) setReturnTo(view string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.returnTo = view
}

// takeReturnTo returns the remembered view and clears it.
func (a *App) takeReturnTo() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	rt := a.returnTo
	a.returnTo = ""
	return rt
}
