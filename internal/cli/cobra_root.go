package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"taskify/internal/config"
	"taskify/internal/domain"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(app *App, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		app:    app,
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "taskify",
		Short: "A command-line client for the Taskify task manager",
		Long: `Taskify is a command-line client for a Taskify task management server.

FEATURES:
  • Sign up, log in and keep the session across invocations
  • List tasks with filtering, sorting and pagination
  • Browse tasks in an interactive table (taskify list -i)
  • Create, inspect, update and delete tasks
  • Show task counts per status
  • Fully configurable via environment variables and command-line flags

EXAMPLES:
  taskify signup "Ada" ada@example.com secret1   # Create an account
  taskify login ada@example.com secret1          # Sign in and store the token
  taskify add --title "Write report" \
    --description "Quarterly numbers" \
    --category work --priority High              # Create a task
  taskify list                                   # List the first page of tasks
  taskify list --filter report --sort priority   # Filter and sort
  taskify list -i                                # Interactive table
  taskify view 7                                 # Show one task in full
  taskify set 7 status Completed                 # Update a task field
  taskify delete 7                               # Delete a task
  taskify stats                                  # Tasks per status

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Server Configuration:
    TASKIFY_SERVER_URL                     Backend base URL (default: http://localhost:3000/api)
    TASKIFY_SERVER_TIMEOUT                 Per-request timeout (default: 10s)

  Storage Configuration:
    TASKIFY_STORAGE_DIR                    Credential store directory (default: ~/.taskify)
    TASKIFY_STORAGE_FILENAME               Credential store filename (default: taskify.db)
    TASKIFY_STORAGE_QUERY_TIMEOUT          Store query timeout (default: 10s)
    TASKIFY_STORAGE_WRITE_TIMEOUT          Store write timeout (default: 5s)

  Table Configuration:
    TASKIFY_TABLE_PAGE_SIZE                Default page size, one of 5/10/20/50 (default: 5)

  Application Configuration:
    TASKIFY_APP_TIMEOUT                    Application timeout (default: 60s)
    TASKIFY_APP_VERBOSE                    Enable verbose output (default: false)
    TASKIFY_DEBUG                          Enable debug logging to stderr

GETTING HELP:
  taskify [command] --help                 # Get help for any specific command
  taskify completion bash                  # Generate bash completion script
  taskify completion zsh                   # Generate zsh completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.getConfigFromFlags()
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Server configuration
	flags.String("server-url", "", "Backend base URL (overrides TASKIFY_SERVER_URL)")
	flags.Duration("server-timeout", 0, "Per-request timeout (overrides TASKIFY_SERVER_TIMEOUT)")

	// Storage configuration
	flags.String("storage-dir", "", "Credential store directory (overrides TASKIFY_STORAGE_DIR)")
	flags.String("storage-filename", "", "Credential store filename (overrides TASKIFY_STORAGE_FILENAME)")

	// Table configuration
	flags.Int("page-size", 0, "Default page size (overrides TASKIFY_TABLE_PAGE_SIZE)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TASKIFY_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TASKIFY_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Signup command
	signupCmd := &cobra.Command{
		Use:   "signup [name] [email] [password]",
		Short: "Create a new account",
		Long:  "Register a new account on the server. Signing up does not log you in.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewSignupCommand(r.app).Execute(ctx, args)
		},
	}

	// Login command
	loginCmd := &cobra.Command{
		Use:   "login [email] [password]",
		Short: "Sign in and store the session token",
		Long:  "Exchange credentials for a session token and persist it for later commands.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewLoginCommand(r.app).Execute(ctx, args)
		},
	}

	// Logout command
	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		Long:  "Delete the stored session token. No server round-trip is made.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewLogoutCommand(r.app).Execute(ctx, args)
		},
	}

	// Whoami command
	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		Long:  "Restore the session from the stored token and print the authenticated profile.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewWhoamiCommand(r.app).Execute(ctx, args)
		},
	}

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks with optional filtering, sorting and pagination.

The filter matches case-insensitively against every task field.
Sort columns: title, category, priority, status, created_at
Page sizes: 5, 10, 20, 50

Examples:
  taskify list                           # First page, default page size
  taskify list --filter report           # Tasks containing "report"
  taskify list --sort priority --desc    # Sorted by priority, descending
  taskify list --page 2 --page-size 10   # Third page of ten
  taskify list -i                        # Interactive table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Interactive sessions run until the user quits
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout()*10)
			defer cancel()

			opts := ListOptions{}
			opts.Filter, _ = cmd.Flags().GetString("filter")
			opts.SortColumn, _ = cmd.Flags().GetString("sort")
			opts.Descending, _ = cmd.Flags().GetBool("desc")
			opts.Page, _ = cmd.Flags().GetInt("page")
			opts.PageSize, _ = cmd.Flags().GetInt("page-size")
			opts.Interactive, _ = cmd.Flags().GetBool("interactive")

			return NewListCommand(r.app).Execute(ctx, opts)
		},
	}
	listCmd.Flags().String("filter", "", "Filter text matched against every field")
	listCmd.Flags().String("sort", "", "Sort column (title, category, priority, status, created_at)")
	listCmd.Flags().Bool("desc", false, "Sort in descending order")
	listCmd.Flags().Int("page", 0, "Zero-based page index")
	listCmd.Flags().IntP("page-size", "s", 0, "Rows per page (5, 10, 20, 50)")
	listCmd.Flags().BoolP("interactive", "i", false, "Open the interactive table")

	// View command
	viewCmd := &cobra.Command{
		Use:   "view [id]",
		Short: "Show a single task",
		Long:  "Fetch one task by id and print every field.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewViewCommand(r.app).Execute(ctx, args)
		},
	}

	// Add command
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		Long: `Create a new task.

Title must be 5 to 50 characters, description 5 to 150.
Priority is one of: Low, Medium, High.

Example:
  taskify add --title "Write report" --description "Quarterly numbers" --category work --priority High`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")
			category, _ := cmd.Flags().GetString("category")
			priority, _ := cmd.Flags().GetString("priority")

			return NewAddCommand(r.app).Execute(ctx, title, description, category, domain.Priority(priority))
		},
	}
	addCmd.Flags().String("title", "", "Task title")
	addCmd.Flags().String("description", "", "Task description")
	addCmd.Flags().String("category", "", "Task category")
	addCmd.Flags().String("priority", "", "Task priority (Low, Medium, High)")

	// Set command
	setCmd := &cobra.Command{
		Use:   "set [id] [field] [value]",
		Short: "Update a single task field",
		Long: `Update the status or priority of a task.

Fields:
  status    Pending, "In Progress", Completed
  priority  Low, Medium, High

Examples:
  taskify set 7 status Completed
  taskify set 7 priority High`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewSetCommand(r.app).Execute(ctx, args)
		},
	}

	// Delete command
	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Long:  "Delete a task by id. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewDeleteCommand(r.app).Execute(ctx, args)
		},
	}

	// Stats command
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts per status",
		Long:  "Show how many tasks are pending, in progress and completed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewStatsCommand(r.app).Execute(ctx, args)
		},
	}

	// Passwd command
	passwdCmd := &cobra.Command{
		Use:   "passwd [old-password] [new-password]",
		Short: "Change the account password",
		Long:  "Change the password of the signed-in account. The session stays valid.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewPasswdCommand(r.app).Execute(ctx, args)
		},
	}

	// Profile command
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the account profile",
		Long: `Update the name and email of the signed-in account.

Fields left out keep their current value.

Example:
  taskify profile --name "Ada Lovelace" --email ada@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")

			return NewProfileCommand(r.app).Execute(ctx, name, email)
		},
	}
	profileCmd.Flags().String("name", "", "New display name")
	profileCmd.Flags().String("email", "", "New email address")

	// Add all subcommands to root
	r.cmd.AddCommand(
		signupCmd,
		loginCmd,
		logoutCmd,
		whoamiCmd,
		listCmd,
		viewCmd,
		addCmd,
		setCmd,
		deleteCmd,
		statsCmd,
		passwdCmd,
		profileCmd,
	)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	// Server configuration
	if serverURL, _ := flags.GetString("server-url"); serverURL != "" {
		r.config.Server.BaseURL = serverURL
	}
	if serverTimeout, _ := flags.GetDuration("server-timeout"); serverTimeout > 0 {
		r.config.Server.RequestTimeout = serverTimeout
	}

	// Storage configuration
	if storageDir, _ := flags.GetString("storage-dir"); storageDir != "" {
		r.config.Storage.Dir = storageDir
	}
	if storageFilename, _ := flags.GetString("storage-filename"); storageFilename != "" {
		r.config.Storage.Filename = storageFilename
	}

	// Table configuration
	if pageSize, _ := flags.GetInt("page-size"); pageSize > 0 {
		r.config.Table.DefaultPageSize = pageSize
	}

	// Application configuration
	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		r.config.Application.Timeout = appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return nil
}
