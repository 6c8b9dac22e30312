package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"cosmossdk.io/log"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Stride-Labs/st-scaling-factor/app"
	"github.com/Stride-Labs/st-scaling-factor/app/health"
	"github.com/Stride-Labs/st-scaling-factor/pkg/icaoracle"
	"github.com/Stride-Labs/st-scaling-factor/pkg/lcd"
	"github.com/Stride-Labs/st-scaling-factor/pkg/osmosis"
	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/client/cli"
	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// Persistent flags
const (
	FlagHome      = "home"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

// Collaborators are the external queriers the keeper is built with
type Collaborators struct {
	Oracle      types.OracleQuerier
	PoolManager types.PoolManagerQuerier
	// LCD is probed by the health checker; nil skips the check
	LCD health.LCDProbe
}

// CollaboratorsFunc builds the collaborators for a resolved config
type CollaboratorsFunc func(cfg NodeConfig, logger log.Logger) (Collaborators, error)

// LCDCollaborators queries Osmosis and the ICA oracle through one rate limited LCD client
func LCDCollaborators(cfg NodeConfig, logger log.Logger) (Collaborators, error) {
	client, err := lcd.NewClient(cfg.LCD, logger.With("module", "lcd"))
	if err != nil {
		return Collaborators{}, err
	}
	return Collaborators{
		Oracle:      icaoracle.NewOracleClient(client),
		PoolManager: osmosis.NewPoolManagerClient(client),
		LCD:         client,
	}, nil
}

type nodeKey struct{}

// node is the per-invocation state the root command resolves before any subcommand runs
type node struct {
	viper         *viper.Viper
	config        NodeConfig
	logger        log.Logger
	collaborators CollaboratorsFunc
}

// openApp builds the collaborators and opens the store under the configured home
func (n *node) openApp() (*app.App, Collaborators, error) {
	collab, err := n.collaborators(n.config, n.logger)
	if err != nil {
		return nil, Collaborators{}, fmt.Errorf("failed to build collaborators: %w", err)
	}

	a, err := app.New(n.logger.With("module", "app"), n.config.Home, n.config.DBBackend, app.Options{
		ChainID:         n.config.ChainID,
		ContractAddress: n.config.ContractAddress,
		Oracle:          collab.Oracle,
		PoolManager:     collab.PoolManager,
	})
	if err != nil {
		return nil, Collaborators{}, err
	}
	return a, collab, nil
}

func nodeFromCmd(cmd *cobra.Command) (*node, error) {
	if ctx := cmd.Context(); ctx != nil {
		if n, ok := ctx.Value(nodeKey{}).(*node); ok {
			return n, nil
		}
	}
	return nil, errors.New("node config not loaded")
}

// openContract satisfies cli.ContractOpener
func openContract(cmd *cobra.Command) (cli.Contract, func() error, error) {
	n, err := nodeFromCmd(cmd)
	if err != nil {
		return nil, nil, err
	}
	a, _, err := n.openApp()
	if err != nil {
		return nil, nil, err
	}
	return a, a.Close, nil
}

// NewRootCmd creates the stscalingd root command backed by LCD collaborators
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithCollaborators(LCDCollaborators)
}

// NewRootCmdWithCollaborators creates the root command with the given collaborator factory
func NewRootCmdWithCollaborators(collaborators CollaboratorsFunc) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stscalingd",
		Short: "stToken stableswap scaling factor controller",
		Long: `stscalingd keeps the scaling factors of registered Osmosis stableswap pools in
line with the redemption rate reported by the Stride ICA oracle.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			n, err := loadNode(cmd, collaborators)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, nodeKey{}, n))
			return nil
		},
	}

	rootCmd.PersistentFlags().String(FlagHome, DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(FlagLogLevel, "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(FlagLogFormat, "plain", "log format (plain|json)")

	rootCmd.AddCommand(
		ConfigCmd(),
		ServeCmd(),
		ExportCmd(),
		ImportCmd(),
		queryCommand(),
		txCommand(),
	)

	return rootCmd
}

func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(cli.GetQueryCmd(openContract))

	return cmd
}

func txCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "tx",
		Short:                      "Transactions subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(cli.GetTxCmd(openContract))

	return cmd
}

// loadNode resolves config from flags, STSCALING_* env, .env files and config.toml
func loadNode(cmd *cobra.Command, collaborators CollaboratorsFunc) (*node, error) {
	if err := loadDotEnv(envFileName); err != nil {
		return nil, err
	}

	v := NewViper()
	for key, flag := range map[string]string{
		KeyHome:      FlagHome,
		KeyLogLevel:  FlagLogLevel,
		KeyLogFormat: FlagLogFormat,
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	home := v.GetString(KeyHome)
	if home == "" {
		home = DefaultNodeHome
	}
	if err := loadDotEnv(filepath.Join(home, envFileName)); err != nil {
		return nil, err
	}
	if err := ReadConfigFile(v, home); err != nil {
		return nil, err
	}
	v.Set(KeyHome, home)

	cfg, err := LoadNodeConfig(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	return &node{
		viper:         v,
		config:        cfg,
		logger:        logger,
		collaborators: collaborators,
	}, nil
}

// loadDotEnv loads path into the environment without overriding set variables
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// NewLogger builds the zerolog backed logger for level and format
func NewLogger(w io.Writer, level, format string) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := []log.Option{log.LevelOption(lvl)}
	if format == "json" {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(w, opts...), nil
}
