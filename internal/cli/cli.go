package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"metra_client/internal/config"
	"metra_client/internal/metra"
	"metra_client/internal/settings"

	"go.uber.org/zap"
)

// Runner is the interactive front end standing in for the desktop GUI: a
// REPL dispatching to the resource services.
type Runner struct {
	options Options
	logger  *zap.Logger
	client  *metra.Session
}

func NewRunner(cfg config.Config, logger *zap.Logger, client *metra.Session) *Runner {
	logger = logger.Named("cli")
	opts := Options{
		BaseURL:      cfg.BaseURL,
		ImageBaseURL: cfg.ImageBaseURL,
		SettingsFile: cfg.SettingsFile,
		LogFile:      cfg.LogFile,
		Timeout:      cfg.Timeout,
		Debug:        cfg.Debug,
	}

	return &Runner{
		options: opts,
		logger:  logger,
		client:  client,
	}
}

func (r *Runner) Execute() error {
	return runCLI(&r.options, r.logger, r.client)
}

func runCLI(opts *Options, logger *zap.Logger, client *metra.Session) error {
	var timeoutSeconds int

	fs := flag.NewFlagSet("metra", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [command args...]\n\nCommands:\n%s\n", fs.Name(), commandHelp)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.BaseURL, "base-url", opts.BaseURL, "Metra API base URL (BASE_URL)")
	fs.StringVar(&opts.SettingsFile, "settings", opts.SettingsFile, "Settings file path (SETTINGS_FILE)")
	fs.BoolVar(&opts.JSON, "json", false, "Output JSON format")
	fs.BoolVar(&opts.Debug, "debug", opts.Debug, "Enable debug logging")
	fs.StringVar(&opts.LogFile, "log-file", opts.LogFile, "Log file path")
	fs.IntVar(&timeoutSeconds, "timeout", int(opts.Timeout.Seconds()), "Request timeout in seconds")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			fs.Usage()
			return nil
		}
		return err
	}

	if timeoutSeconds > 0 {
		opts.Timeout = time.Duration(timeoutSeconds) * time.Second
	}

	client = clientFromOptions(opts, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	args := fs.Args()
	if len(args) > 0 {
		return dispatch(ctx, opts, client, args)
	}
	return runREPL(ctx, opts, client)
}

// clientFromOptions rebuilds the session after flag parsing, since flags
// can point at another backend or settings file than the loaded config.
func clientFromOptions(opts *Options, logger *zap.Logger) *metra.Session {
	cfg := config.Config{
		BaseURL:      opts.BaseURL,
		ImageBaseURL: opts.ImageBaseURL,
		Timeout:      opts.Timeout,
		SettingsFile: opts.SettingsFile,
	}
	tokens := metra.NewTokenStore(settings.NewStore(opts.SettingsFile))
	return metra.NewClient(cfg, tokens, logger)
}

func runREPL(ctx context.Context, opts *Options, client *metra.Session) error {
	reader := bufio.NewScanner(os.Stdin)
	fmt.Fprintln(os.Stdout, "Metra CLI (type 'help' for commands, 'exit' to quit)")

	for {
		fmt.Fprint(os.Stdout, "> ")
		if !reader.Scan() {
			return reader.Err()
		}

		line := strings.TrimSpace(reader.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "help":
			fmt.Fprintln(os.Stdout, commandHelp)
			continue
		case "exit", "quit":
			return nil
		}

		if err := dispatch(ctx, opts, client, strings.Fields(line)); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintln(os.Stderr, friendlyError(err))
		}
	}
}

const commandHelp = `  login <phone> <password>         authenticate and store the token
  logout                           clear the stored token
  whoami                           show the authenticated user
  branches [search]                list branches
  branch <id>                      show one branch
  branch-find <name>               resolve a branch id by exact name
  branch-add <name> <type> [desc]  create a branch
  branch-edit <id> <name> <type>   update a branch
  branch-del <id>                  delete a branch
  clients [page] [search]          list clients (paginated)
  client-options [search]          client dropdown list
  client <id>                      show one client
  client-add <name> <phone>        create a client
  client-edit <id> <name> <phone>  update a client
  client-del <id>                  delete a client
  client-image <path>              upload a client image
  invoice <id>                     show one invoice
  materials <rentId>               list materials for a rent
  invoice-add <branch> <client> <rent>  create an invoice
  invoice-del <id>                 soft-delete an invoice
  invoice-restore <id>             restore a soft-deleted invoice
  invoice-purge <id>               hard-delete an invoice
  search-clients                   live incremental client search`
