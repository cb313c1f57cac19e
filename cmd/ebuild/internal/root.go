package internal

import (
	"os"

	"github.com/goplus/ebuild/ebuild"
	"github.com/goplus/ebuild/internal/env"
	"github.com/goplus/ebuild/pkgs/logging"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	colorFlag string
	debugFlag bool

	cfg    env.Config
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ebuild",
	Short: "ebuild runs portable build steps",
	Long: `ebuild provides the primitives of a build script as commands that behave
the same on every platform: run a command and stop on failure, create a
directory tree, remove a tree, and build paths.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: configure,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "Color tags: auto, always or never (default $EBUILD_COLOR or auto)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug lines")
}

// configure merges the environment with the command line flags.
func configure(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = env.Load()
	if err != nil {
		return eris.Wrap(err, "invalid environment")
	}
	if cmd.Flags().Changed("color") {
		if cfg.Color, err = logging.ParseColorMode(colorFlag); err != nil {
			return err
		}
	}
	if debugFlag {
		cfg.Debug = true
	}
	logger = logging.New(logging.Options{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Color:  cfg.Color,
		Debug:  cfg.Debug,
	})
	logger.Debug("config: color=%s debug=%t follow-symlinks=%t", cfg.Color, cfg.Debug, cfg.FollowSymlinks)
	return nil
}

// run executes the command line and returns the exit status.
func run(args []string) int {
	// Errors raised before configure runs, such as argument validation,
	// still need somewhere to go.
	logger = logging.New(logging.Options{Stdout: rootCmd.OutOrStdout(), Stderr: rootCmd.ErrOrStderr()})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err != nil && !logging.IsReported(err) {
		logger.Erro("%v", err)
	}
	return ebuild.ExitCodeForError(err)
}

// Execute runs the root command with the process arguments and exits on failure.
// This is called by main.main().
func Execute() {
	if code := run(os.Args[1:]); code != ebuild.ExitSuccess {
		os.Exit(code)
	}
}
