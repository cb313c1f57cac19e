package internal

import (
	"errors"

	"github.com/goplus/ebuild/pkgs/fsutil"
	"github.com/goplus/ebuild/pkgs/logging"
	"github.com/spf13/cobra"
)

var rmFollowSymlinks bool

// errFalse makes a predicate command exit with a failure status silently.
var errFalse = logging.Reported(errors.New("false"))

var mkdirsCmd = &cobra.Command{
	Use:   "mkdirs segment [segment...]",
	Short: "Create a directory and every missing parent",
	Long: `Mkdirs joins the segments with the path separator and creates each prefix
in turn. Directories that already exist are reported as warnings.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newFS().Mkdirs(args...)
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm path [path...]",
	Short: "Remove files and directory trees",
	Long: `Rm removes each path; directories are removed with everything beneath them.
A path that does not exist is reported as a warning. Symbolic links are
removed without touching their targets unless --follow-symlinks is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := newFS()
		for _, path := range args {
			if err := f.Remove(path); err != nil {
				return err
			}
		}
		return nil
	},
}

var isdirCmd = &cobra.Command{
	Use:   "isdir path",
	Short: "Exit successfully if path is a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := newFS().IsDir(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return errFalse
		}
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVar(&rmFollowSymlinks, "follow-symlinks", false, "Descend into symbolic links to directories")
	rootCmd.AddCommand(mkdirsCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(isdirCmd)
}

func newFS() *fsutil.FS {
	return fsutil.New(logger, fsutil.Options{
		FollowSymlinks: rmFollowSymlinks || cfg.FollowSymlinks,
	})
}
