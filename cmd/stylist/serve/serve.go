package servecmder

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ubique/stylist/pkg/config"
	"github.com/ubique/stylist/pkg/conversation"
	"github.com/ubique/stylist/pkg/gateway"
	"github.com/ubique/stylist/pkg/logger"
	"github.com/ubique/stylist/pkg/policy"
	"github.com/ubique/stylist/pkg/stylist"
	"github.com/ubique/stylist/server"
)

const serveLongDesc string = `Run the stylist HTTP server.

Settings are read from defaults, then the optional TOML file given with
--config, then STYLIST_* environment variables, then flags. .env.local and
.env in the working directory are loaded first when present, and reloaded
whenever they change unless --watch-env=false.

The Azure OpenAI deployment is resolved from the environment on every
request:
  AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_API_KEY, AZURE_OPENAI_DEPLOYMENT,
  AZURE_OPENAI_API_VERSION (default 2024-12-01-preview)

Examples:
  stylist serve
  stylist serve --listen :9000 --debug
  stylist serve --config /etc/stylist.toml --provider sdk`

const serveShortDesc string = "Run the stylist server"

type serveCommander struct {
	configPath string
	envFiles   []string
	listen     string
	provider   string
	debug      bool
	watchEnv   bool
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Path to a TOML config file")
	cmd.Flags().StringSliceVar(&cmder.envFiles, "env-file", []string{".env.local", ".env"}, "Dotenv files to load when present")
	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address to listen on")
	cmd.Flags().StringVar(&cmder.provider, "provider", "", "Gateway implementation: http or sdk")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&cmder.watchEnv, "watch-env", true, "Reload the env files when they change")

	return cmd
}

func (c *serveCommander) run(ctx context.Context, cmd *cobra.Command) error {
	dotenv := config.NewDotEnv(c.envFiles...)
	loaded := dotenv.Load()

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("could not load configuration: %w", err)
	}
	if cmd.Flags().Changed("listen") {
		cfg.ListenAddr = c.listen
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = c.provider
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = c.debug
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(logger.Options{Debug: cfg.Debug, Format: cfg.LogFormat})
	defer log.Sync()

	log.Info("stylist starting",
		zap.String("listen", cfg.ListenAddr),
		zap.String("provider", cfg.Provider),
		zap.Strings("env_files", loaded),
		zap.Bool("debug", cfg.Debug),
	)

	p := policy.Default()
	client, err := gateway.New(cfg.Provider, gateway.EnvResolver{}, p, log)
	if err != nil {
		return err
	}
	svc := stylist.New(conversation.NewAssembler(p), client, log)

	srv, err := server.New(server.Config{
		ListenAddr:   cfg.ListenAddr,
		BodyLimit:    cfg.BodyLimitMB << 20,
		AllowOrigins: cfg.AllowOrigins,
		EnableMCP:    cfg.MCP,
	}, svc, log)
	if err != nil {
		return fmt.Errorf("could not create server: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if c.watchEnv {
		if err := dotenv.Watch(ctx, log); err != nil {
			log.Warn("env files will not be reloaded", zap.Error(err))
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
		return srv.Shutdown()
	}
}
