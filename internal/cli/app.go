// Package cli implements the portfolio-admin command set over the API modules.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/trace"

	"portfolio-admin/internal/api"
	"portfolio-admin/internal/auth"
	"portfolio-admin/internal/common/config"
	"portfolio-admin/internal/common/errors"
	commonhttp "portfolio-admin/internal/common/http"
	"portfolio-admin/internal/common/logger"
	"portfolio-admin/internal/common/observability"
	"portfolio-admin/internal/session"
)

// terminalNavigator stands in for the browser redirect: it tells the user to log in again.
type terminalNavigator struct {
	out io.Writer
}

func (n terminalNavigator) Navigate(route string) {
	fmt.Fprintf(n.out, "Session expired or unauthorized (redirect to %s). Run `portfolio-admin login` to sign in again.\n", route)
}

// App wires one session, one HTTP client and every API module for a single run.
type App struct {
	cfg       *config.Config
	session   *session.Session
	api       *api.Client
	auth      *auth.Service
	resources map[string]resourceCommands
	obs       *observability.Observability
	logger    logger.Logger
	out       io.Writer
	errOut    io.Writer
}

type Options struct {
	Config        *config.Config
	Logger        logger.Logger
	Observability *observability.Observability
	Out           io.Writer
	ErrOut        io.Writer
}

func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	out, errOut := opts.Out, opts.ErrOut
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	storage, err := session.NewStorage(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("session storage: %w", err)
	}
	sess := session.New(storage, log)

	httpClient := commonhttp.NewClient(commonhttp.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.TimeoutDuration(),
		UserAgent: cfg.API.UserAgent,
		Logger:    log,
	})
	nav := terminalNavigator{out: errOut}
	auth.NewInterceptor(sess, nav, cfg.API.LoginRoute, log).Install(httpClient)

	client := api.New(httpClient, log)
	// Only a forced logout prints the re-login notice; the logout command reports itself.
	quiet := auth.NavigatorFunc(func(string) {})
	return &App{
		cfg:       cfg,
		session:   sess,
		api:       client,
		auth:      auth.NewService(client.Auth, sess, quiet, cfg.API.LoginRoute, log),
		resources: resourceTable(client),
		obs:       opts.Observability,
		logger:    log,
		out:       out,
		errOut:    errOut,
	}, nil
}

// Close releases the session backend.
func (a *App) Close() error {
	return a.session.Close()
}

// Run executes one command and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.usage()
		return 2
	}
	name, rest := args[0], args[1:]

	cmd, ok := a.commands()[name]
	if !ok {
		if name != "help" && name != "-h" && name != "--help" {
			fmt.Fprintf(a.errOut, "Unknown command %q\n\n", name)
			a.usage()
			return 2
		}
		a.usage()
		return 0
	}

	if a.obs != nil {
		var span trace.Span
		ctx, span = a.obs.StartSpan(ctx, "command "+name)
		defer span.End()
	}

	start := time.Now()
	err := cmd.run(ctx, rest)
	status := "ok"
	if err != nil {
		status = "error"
	}
	if a.obs != nil {
		a.obs.RecordCommand(ctx, name, status, time.Since(start))
	}

	if err != nil {
		if usageErr, ok := err.(usageError); ok {
			fmt.Fprintf(a.errOut, "Error: %s\nUsage: portfolio-admin %s\n", usageErr.msg, cmd.usage)
			return 2
		}
		a.printError(name, err)
		return 1
	}
	return 0
}

func (a *App) printError(command string, err error) {
	stdErr := errors.Normalize(err)
	a.logger.Debug("command failed", map[string]interface{}{
		"command":   command,
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
	})
	msg := stdErr.UserMessage("")
	if stdErr.Code == errors.ErrCodeValidation && stdErr.Details != "" {
		msg = stdErr.Details
	}
	fmt.Fprintf(a.errOut, "Error: %s\n", msg)
}

func (a *App) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewSerializationError(err)
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}

func (a *App) usage() {
	fmt.Fprintln(a.errOut, "Usage: portfolio-admin [-config path] [-metrics-addr addr] <command> [args]")
	fmt.Fprintln(a.errOut, "\nCommands:")
	for _, name := range commandOrder {
		fmt.Fprintf(a.errOut, "  %-16s %s\n", name, a.commands()[name].usage)
	}
	fmt.Fprintf(a.errOut, "\nResources: %v\n", resourceNames(a.resources))
}
