package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/estado/internal/buildinfo"
	"github.com/cleared-dev/estado/internal/config"
	"github.com/cleared-dev/estado/internal/logger"
)

// DefaultConfigFile is loaded from the working directory when --config is not given.
const DefaultConfigFile = "estado.yaml"

// globals are the persistent flags and what PersistentPreRunE derives from them.
type globals struct {
	configPath string
	verbose    bool

	cfg *config.Config
	log zerolog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "estado",
		Short:   "Rebuild bank statements into clean, fixed-layout PDFs",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "configuration file (default ./"+DefaultConfigFile+" when present)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(newConvertCommand(g))
	rootCmd.AddCommand(newExtractCommand(g))
	rootCmd.AddCommand(newRenderCommand(g))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

func (g *globals) setup(cmd *cobra.Command) error {
	g.log = logger.New(g.verbose)
	cmd.SetContext(logger.WithContext(cmd.Context(), g.log))

	switch {
	case g.configPath != "":
		cfg, err := config.Load(g.configPath)
		if err != nil {
			return err
		}
		g.cfg = cfg
	default:
		cfg, err := config.Load(DefaultConfigFile)
		switch {
		case err == nil:
			g.cfg = cfg
		case errors.Is(err, os.ErrNotExist):
			g.cfg = config.Default()
		default:
			return fmt.Errorf("%s: %w", DefaultConfigFile, err)
		}
	}
	g.log.Debug().Str("config", g.configPath).Msg("configuration loaded")
	return nil
}
