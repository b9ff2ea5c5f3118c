// Package commands provides CLI commands for redactchat.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/redactchat/internal/api"
	"github.com/diogo/redactchat/internal/config"
	"github.com/diogo/redactchat/internal/logging"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	redactURL string
	queryURL  string
	timeout   int
	proxy     string
	verbose   bool
}

// loadConfig reads the config file and environment, then applies flags
func (g *globalOptions) loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}
	if g.redactURL != "" {
		cfg.Endpoints.Redact = g.redactURL
	}
	if g.queryURL != "" {
		cfg.Endpoints.Query = g.queryURL
	}
	if g.timeout > 0 {
		cfg.TimeoutSeconds = g.timeout
	}
	if g.proxy != "" {
		cfg.Proxy = g.proxy
	}
	if g.verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// runtime is what a command needs to talk to the two services
type runtime struct {
	cfg    config.Config
	logger *zap.Logger
	client api.PipelineClient
}

func openRuntime(deps *Dependencies, g *globalOptions) (*runtime, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: logging disabled: %v\n", err)
		logger = zap.NewNop()
	}

	client := deps.Client
	if client == nil {
		c, err := api.NewClientFromConfig(cfg, logger)
		if err != nil {
			_ = logger.Sync()
			return nil, fmt.Errorf("failed to create client: %w", err)
		}
		client = c
	}

	logger.Debug("runtime ready",
		zap.String("redact", cfg.Endpoints.Redact),
		zap.String("query", cfg.Endpoints.Query),
		zap.Duration("timeout", cfg.Timeout()))

	return &runtime{cfg: cfg, logger: logger, client: client}, nil
}

func (r *runtime) Close() {
	r.client.Close()
	_ = r.logger.Sync()
}

// NewRootCmd builds the command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	g := &globalOptions{}
	ask := &askOptions{}

	cmd := &cobra.Command{
		Use:   "redactchat [text]",
		Short: "Chat through a redaction service",
		Long: `redactchat sends every message through a redaction service first and
only forwards the redacted text to the query service.

Examples:
  redactchat                              Start interactive chat
  redactchat chat                         Start interactive chat
  redactchat "My name is Joe, summarize"  One-shot redact and query
  redactchat -f prompt.md                 Read text from file
  cat prompt.md | redactchat              Read text from stdin
  redactchat ask "Hello" -o answer.md     Save the answer to a file
  redactchat config init                  Write the default config`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "redactchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if len(args) > 0 || ask.file != "" || !deps.StdinIsTerminal() {
				text, err := readInput(deps, args, ask.file)
				if err != nil {
					return err
				}
				return runAsk(cmd.Context(), deps, g, text, *ask)
			}

			for _, name := range []string{"output", "copy", "raw"} {
				if cmd.Flags().Changed(name) {
					return fmt.Errorf("--%s needs input text: pass it as an argument, with --file or on stdin", name)
				}
			}
			return runChat(deps, g)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.redactURL, "redact-url", "", "Redaction service endpoint (default "+config.DefaultConfig().Endpoints.Redact+")")
	pf.StringVar(&g.queryURL, "query-url", "", "Query service endpoint (default "+config.DefaultConfig().Endpoints.Query+")")
	pf.IntVar(&g.timeout, "timeout", 0, "Per-request timeout in seconds")
	pf.StringVar(&g.proxy, "proxy", "", "HTTP proxy URL")
	pf.BoolVar(&g.verbose, "verbose", false, "Debug logging to the log file")

	cmd.Flags().BoolP("version", "v", false, "Show version and exit")
	ask.bind(cmd)

	cmd.AddCommand(NewChatCmd(deps, g))
	cmd.AddCommand(NewAskCmd(deps, g))
	cmd.AddCommand(NewConfigCmd(deps, g))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
