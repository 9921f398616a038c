package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"task-manager/internal/api"
	"task-manager/internal/client"
	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/services"
	"task-manager/internal/tui"
	"task-manager/internal/validation"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	configFile string
	envFile    string
	config     *config.Config

	// newClient builds the REST client once configuration is loaded
	newClient func(cfg *config.Config) TaskClient
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand() *RootCommand {
	root := &RootCommand{
		envFile: config.DefaultEnvFile,
		newClient: func(cfg *config.Config) TaskClient {
			return client.New(cfg.Client.BaseURL, cfg.Client.Timeout)
		},
	}

	root.cmd = &cobra.Command{
		Use:   "tm",
		Short: "A task manager service and its terminal client",
		Long: `Task Manager (tm) keeps a list of to-do tasks behind a REST API.

The same binary runs the HTTP service, an interactive terminal client and
scriptable client commands.

EXAMPLES:
  tm serve                                 # Start the HTTP service on :5000
  tm serve --store sqlite                  # Use an embedded SQLite file instead of MongoDB
  tm tui                                   # Open the interactive terminal client
  tm add "Buy milk" -d "2 litres"          # Create a task
  tm list --format json                    # List tasks, newest first
  tm done <id>                             # Mark a task completed
  tm edit <id> --title "Buy oat milk"      # Change a title
  tm delete <id>                           # Delete a task
  tm output format=csv > tasks.csv         # Export to CSV

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > .env file > config file > defaults

  Server:
    TM_PORT (or PORT)                      Listen port (default: 5000)
    TM_REQUEST_TIMEOUT                     Per-request timeout (default: 10s)
    TM_SHUTDOWN_TIMEOUT                    Graceful shutdown timeout (default: 5s)
    TM_CORS_ORIGIN                         Allowed browser origin (default: http://localhost:3000)

  Store:
    TM_STORE_BACKEND                       mongo or sqlite (default: mongo)
    TM_MONGODB_URI (or MONGODB_URI)        Connection string (default: mongodb://localhost:27017/taskmanager)
    TM_MONGODB_COLLECTION                  Collection name (default: tasks)
    TM_SQLITE_PATH                         SQLite database file (default: tm.db)
    TM_STORE_CONNECT_TIMEOUT               Connect timeout (default: 10s)

  Client:
    TM_API_URL                             Tasks endpoint (default: http://localhost:5000/api/tasks)
    TM_CLIENT_TIMEOUT                      Request timeout (default: 10s)

  Application:
    TM_CONFIG                              YAML config file
    TM_DEBUG                               Enable debug logging (default: false)
    TM_ENV                                 development or production (default: production)
    TM_LOG_FILE                            Terminal client log file (default: discard)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command with ctx
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides the command line arguments
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects standard and error output
func (r *RootCommand) SetOutput(out, errOut io.Writer) {
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// WithClient makes client commands use c instead of a REST client
func (r *RootCommand) WithClient(c TaskClient) *RootCommand {
	r.newClient = func(*config.Config) TaskClient { return c }
	return r
}

// WithEnvFile changes the .env file read at startup. Empty skips it.
func (r *RootCommand) WithEnvFile(path string) *RootCommand {
	r.envFile = path
	return r
}

// Config returns the configuration loaded for the running command
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configFile, "config", "", "YAML config file (overrides TM_CONFIG)")

	// Server configuration
	flags.Int("port", 0, "HTTP listen port (overrides TM_PORT)")
	flags.String("cors-origin", "", "Allowed browser origin (overrides TM_CORS_ORIGIN)")

	// Store configuration
	flags.String("store", "", "Store backend, mongo or sqlite (overrides TM_STORE_BACKEND)")
	flags.String("mongo-uri", "", "MongoDB connection string (overrides TM_MONGODB_URI)")
	flags.String("sqlite-path", "", "SQLite database file (overrides TM_SQLITE_PATH)")

	// Client configuration
	flags.String("api-url", "", "Tasks endpoint used by client commands (overrides TM_API_URL)")
	flags.Duration("client-timeout", 0, "Client request timeout (overrides TM_CLIENT_TIMEOUT)")

	// Application configuration
	flags.Bool("debug", false, "Enable debug logging (overrides TM_DEBUG)")
	flags.String("log-file", "", "Terminal client log file (overrides TM_LOG_FILE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP service",
		Long: `Connect to the configured store and serve the REST API.

The store is connected and pinged before the listener opens. The service
shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runServe(cmd.Context(), cmd.ErrOrStderr())
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal client",
		Long: `Browse and edit tasks in the terminal.

Keys: ↑/↓ move, space toggles completion, e edits, d deletes, a adds,
tab switches fields, enter saves, esc cancels, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTUI(cmd.Context())
		},
	}

	var listFormat string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.dispatch(cmd, "list", args, func(app *App) Command { return NewListCommand(app, listFormat) })
		},
	}
	listCmd.Flags().StringVarP(&listFormat, "format", "f", FormatTable, "Output format: table, json or yaml")

	var addDescription string
	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a task",
		Long: `Create a task. All arguments are joined into the title.

Examples:
  tm add Buy milk
  tm add "Pay rent" -d "by Friday"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.dispatch(cmd, "add", args, func(app *App) Command { return NewAddCommand(app, addDescription) })
		},
	}
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")

	var editTitle, editDescription string
	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change the title or description of a task",
		Long: `Change the title or description of a task. Only the flags given are sent.

Examples:
  tm edit <id> --title "Buy oat milk"
  tm edit <id> --description ""            # Clear the description`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var title, description *string
			if cmd.Flags().Changed("title") {
				title = &editTitle
			}
			if cmd.Flags().Changed("description") {
				description = &editDescription
			}
			return r.dispatch(cmd, "edit", args, func(app *App) Command { return NewEditCommand(app, title, description) })
		},
	}
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description")

	doneCmd := &cobra.Command{
		Use:   "done [id...]",
		Short: "Mark tasks completed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.dispatch(cmd, "done", args, nil)
		},
	}

	undoneCmd := &cobra.Command{
		Use:   "undone [id...]",
		Short: "Mark tasks pending",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.dispatch(cmd, "undone", args, nil)
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete [id...]",
		Aliases: []string{"rm"},
		Short:   "Delete tasks",
		Long:    "Delete tasks by id. This operation cannot be undone.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.dispatch(cmd, "delete", args, nil)
		},
	}

	outputCmd := &cobra.Command{
		Use:   "output format=csv",
		Short: "Export all tasks",
		Long: `Export all tasks in the specified format.

Supported formats:
  csv  - Comma-separated values
  json - JSON array
  yaml - YAML sequence

Example:
  tm output format=csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.dispatch(cmd, "output", args, nil)
		},
	}

	r.cmd.AddCommand(
		serveCmd,
		tuiCmd,
		listCmd,
		addCmd,
		editCmd,
		doneCmd,
		undoneCmd,
		deleteCmd,
		outputCmd,
	)
}

// app builds the client application for a subcommand
func (r *RootCommand) app(cmd *cobra.Command) *App {
	app := NewAppWithValidator(r.newClient(r.config), validation.NewTaskValidatorWithConfig(r.config))
	app.SetOutput(cmd.OutOrStdout())
	return app
}

// dispatch runs name through the App's registry. build, when set, replaces the
// registered command with one configured from the subcommand's flags.
func (r *RootCommand) dispatch(cmd *cobra.Command, name string, args []string, build func(app *App) Command) error {
	app := r.app(cmd)
	if build != nil {
		app.registry.Register(name, build(app))
	}
	return app.Run(cmd.Context(), append([]string{name}, args...))
}

func (r *RootCommand) runServe(ctx context.Context, logOut io.Writer) error {
	cfg := r.config
	log := logging.New(logOut, cfg.Application.Debug)

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s, err := config.CreateStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	log.Infof("connected to %s store", cfg.Store.Backend)

	svc := services.NewTaskService(s,
		services.WithValidator(validation.NewTaskValidatorWithConfig(cfg)),
		services.WithLogger(log),
	)
	server := api.NewServer(svc, api.Options{
		Addr:            cfg.Addr(),
		RequestTimeout:  cfg.Server.RequestTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		CORSOrigin:      cfg.Server.CORSOrigin,
		Logger:          log,
	})
	return server.Run(ctx)
}

func (r *RootCommand) runTUI(ctx context.Context) error {
	cfg := r.config
	log, closer, err := logging.OpenFile(cfg.Application.LogFile, cfg.Application.Debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	return tui.Run(ctx, r.newClient(cfg), log)
}

// loadConfig loads configuration and applies the flags that were set
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("port") {
		port, _ := flags.GetInt("port")
		overrides.Port = &port
	}
	if flags.Changed("cors-origin") {
		origin, _ := flags.GetString("cors-origin")
		overrides.CORSOrigin = &origin
	}
	if flags.Changed("store") {
		backend, _ := flags.GetString("store")
		overrides.StoreBackend = &backend
	}
	if flags.Changed("mongo-uri") {
		uri, _ := flags.GetString("mongo-uri")
		overrides.MongoURI = &uri
	}
	if flags.Changed("sqlite-path") {
		path, _ := flags.GetString("sqlite-path")
		overrides.SQLitePath = &path
	}
	if flags.Changed("api-url") {
		apiURL, _ := flags.GetString("api-url")
		overrides.APIURL = &apiURL
	}
	if flags.Changed("client-timeout") {
		timeout, _ := flags.GetDuration("client-timeout")
		overrides.ClientTimeout = &timeout
	}
	if flags.Changed("debug") {
		debug, _ := flags.GetBool("debug")
		overrides.Debug = &debug
	}
	if flags.Changed("log-file") {
		logFile, _ := flags.GetString("log-file")
		overrides.LogFile = &logFile
	}

	cfg, err := config.NewLoader().
		WithConfigFile(r.configFile).
		WithEnvFile(r.envFile).
		LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg
	return nil
}
