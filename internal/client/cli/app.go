package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophtimecard/internal/client/client"
	"github.com/dmitrijs2005/gophtimecard/internal/client/config"
	"github.com/dmitrijs2005/gophtimecard/internal/client/models"
	"github.com/dmitrijs2005/gophtimecard/internal/client/preview"
	"github.com/dmitrijs2005/gophtimecard/internal/client/services"
	"github.com/dmitrijs2005/gophtimecard/internal/export"
	"github.com/dmitrijs2005/gophtimecard/internal/imagesource"
	"github.com/dmitrijs2005/gophtimecard/internal/logging"
	"github.com/dmitrijs2005/gophtimecard/internal/rotation"
	"github.com/dmitrijs2005/gophtimecard/internal/session"
)

const pingTimeout = 5 * time.Second

type imageOpener interface {
	Open(ctx context.Context, ref string) (rotation.Image, error)
}

type previewStore interface {
	Publish(img rotation.Image) (string, error)
	Release() error
}

type workbookWriter interface {
	SaveAs(ctx context.Context, path string, cards []models.Timecard) error
}

// App is the interactive timecard client. It owns the session state and
// applies every transition through commit.
type App struct {
	state   session.State
	baseURL string

	service  services.TimecardService
	source   imageOpener
	previews previewStore
	exporter workbookWriter
	logger   logging.Logger

	out   io.Writer
	lines <-chan string
}

// NewApp wires the HTTP client, image source, preview store and exporter
// described by c.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	api, err := client.NewHTTPClient(c.ServiceBaseURL, c.RequestTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("timecard client: %w", err)
	}

	src := imagesource.New(imagesource.S3Config{
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	})

	return &App{
		state:    session.New(c.MaxDays),
		baseURL:  api.BaseURL(),
		service:  services.NewTimecardService(api, logger),
		source:   src,
		previews: preview.NewStore(c.PreviewDir),
		exporter: export.New(logger),
		logger:   logger,
		out:      os.Stdout,
	}, nil
}

// Run reads commands from in until EOF, exit, or ctx is cancelled. The live
// preview file is removed on the way out.
func (a *App) Run(ctx context.Context, in io.Reader) {
	defer func() {
		if err := a.previews.Release(); err != nil {
			a.logger.Warn(ctx, "preview.release", "err", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.lines = readLines(ctx, in)
	if isTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(a.out, "Timecard CLI (type 'help' for commands)")
	}
	runREPL(ctx, a, a.status, a.lines)
}

func (a *App) status() string {
	return a.state.String()
}

func (a *App) phase() session.Phase {
	return a.state.Phase()
}

// commit installs next when err is nil and releases a preview file the new
// state no longer references. A refused transition leaves the state as is.
func (a *App) commit(ctx context.Context, next session.State, err error) error {
	if err != nil {
		a.logger.Warn(ctx, "session.transition.refused", "phase", a.state.Phase().String(), "err", err)
		return err
	}

	prev := a.state
	a.state = next

	if prev.Preview() != "" && next.Preview() == "" {
		if rerr := a.previews.Release(); rerr != nil {
			a.logger.Warn(ctx, "preview.release", "path", prev.Preview(), "err", rerr)
		}
	}

	if prev.Phase() != next.Phase() {
		a.logger.Debug(ctx, "session.transition", "from", prev.Phase().String(), "to", next.Phase().String())
	}
	return nil
}

// confirm asks a yes/no question on the REPL input. Anything but y/yes is no.
func (a *App) confirm(ctx context.Context, question string) bool {
	answer, err := GetSimpleText(ctx, a.lines, question+" [y/N]", a.out)
	if err != nil {
		return false
	}
	return isYes(answer)
}
