package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"journeybuilder/infrastructure/config"
	"journeybuilder/infrastructure/di"
)

// opener builds the dependency container for one command run
type opener func(ctx context.Context, cfg *config.Config) (*di.Container, func(), error)

// cli carries the state shared by every subcommand
type cli struct {
	out     io.Writer
	open    opener
	loadCfg func() (*config.Config, error)

	storage  string
	path     string
	jsonMode bool
}

func newRootCmd(out io.Writer, open opener, loadCfg func() (*config.Config, error)) *cobra.Command {
	c := &cli{out: out, open: open, loadCfg: loadCfg}

	root := &cobra.Command{
		Use:   "journeyctl",
		Short: "Inspect and edit journeys and segments from the command line",
		Long: `journeyctl works directly against the configured snapshot storage,
the same storage the API server reads on start.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.storage, "storage", "", "storage backend override (memory, badger, dynamodb)")
	root.PersistentFlags().StringVar(&c.path, "path", "", "storage path override for the badger backend")
	root.PersistentFlags().BoolVar(&c.jsonMode, "json", false, "print JSON instead of tables")

	root.AddCommand(
		c.journeysCmd(),
		c.segmentsCmd(),
		c.templatesCmd(),
		c.tokenCmd(),
	)
	return root
}

// config loads the configuration and applies the persistent flag overrides
func (c *cli) config() (*config.Config, error) {
	cfg, err := c.loadCfg()
	if err != nil {
		return nil, err
	}
	if c.storage != "" {
		cfg.StorageBackend = c.storage
	}
	if c.path != "" {
		cfg.StoragePath = c.path
	}
	// the CLI never serves requests
	cfg.RateLimitPerMinute = 0
	return cfg, cfg.Validate()
}

// withContainer runs fn against a freshly restored container
func (c *cli) withContainer(cmd *cobra.Command, fn func(*di.Container) error) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	container, cleanup, err := c.open(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer cleanup()

	if cfg.StorageBackend == config.StorageMemory {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: memory storage, changes are discarded on exit")
	}
	return fn(container)
}

func (c *cli) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
