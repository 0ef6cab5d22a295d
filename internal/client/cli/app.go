package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/employeeboard/internal/client/client"
	"github.com/dmitrijs2005/employeeboard/internal/client/config"
	"github.com/dmitrijs2005/employeeboard/internal/client/services"
	"github.com/dmitrijs2005/employeeboard/internal/client/view"
	"github.com/dmitrijs2005/employeeboard/internal/logging"
	"github.com/fatih/color"
	"golang.org/x/term"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

// pingTimeout bounds a single reachability probe.
const pingTimeout = 3 * time.Second

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config *config.Config
	data   services.DataService
	view   *view.Reconciler
	logger logging.Logger
	closer io.Closer

	reader *bufio.Reader
	out    io.Writer

	modeMu sync.Mutex
	mode   Mode
}

func NewApp(c *config.Config) (*App, error) {
	u, err := url.Parse(c.ServerEndpointAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme and host are required", c.ServerEndpointAddr)
	}

	logger, closer := logging.NewFileLogger(logging.FileOptions{
		Path:       c.LogFile,
		MaxSizeMB:  10,
		MaxBackups: 3,
		Debug:      c.LogDebug,
	})

	apiClient := client.NewGraphQLClient(c.ServerEndpointAddr, c.RequestTimeout, logger)
	data := services.NewDataService(apiClient, logger, services.Options{
		CacheTTL:          c.CacheTTL,
		Revalidate:        c.Revalidate,
		RevalidateTimeout: c.RequestTimeout,
	})

	a := newApp(c, data, logger, bufio.NewReader(os.Stdin), os.Stdout)
	a.closer = closer
	return a, nil
}

func newApp(c *config.Config, data services.DataService, l logging.Logger, r *bufio.Reader, w io.Writer) *App {
	return &App{
		config: c,
		data:   data,
		view:   view.NewReconciler(data, l),
		logger: l.With("module", "cli"),
		reader: r,
		out:    w,
	}
}

func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "mode switched", "mode", mode)
	}
}

// Run starts the REPL and blocks until the user leaves or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.shutdown()

	color.NoColor = !isTerminal(int(os.Stdout.Fd()))

	fmt.Fprintln(a.out, "Welcome to employeeboard (type 'help' for commands)")

	if a.config.OnlineCheckInterval > 0 {
		a.probe(ctx)
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	} else {
		a.setMode(ModeDisabled)
	}

	_ = a.List(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) shutdown() {
	a.view.Close()
	a.data.Wait()
	if a.closer != nil {
		_ = a.closer.Close()
	}
}

// StartOnlineStatusWatcher pings the server every interval and switches
// between online and offline mode. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.data.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// getStatus describes the current view and mode for the prompt.
func (a *App) getStatus() string {
	v := a.view.View()

	s := "employees"
	if d := v.Detail; d != nil {
		s = fmt.Sprintf("employee %d", d.ID)
		if d.Post != nil {
			s += fmt.Sprintf(" / post %d", d.Post.Post.ID)
		}
	}
	if m := a.Mode(); m != "" {
		s += " " + string(m)
	}
	return "(" + s + ")"
}
