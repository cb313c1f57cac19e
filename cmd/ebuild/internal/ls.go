package internal

import (
	"fmt"
	"sort"

	"github.com/goplus/ebuild/pkgs/dirent"
	"github.com/goplus/ebuild/pkgs/logging"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	lsSort bool
	lsAll  bool
)

var lsCmd = &cobra.Command{
	Use:   "ls [dir]",
	Short: "List the entries of a directory",
	Long: `Ls prints the names in a directory, one per line, in the order the
platform returns them. "." and ".." are included only with --all.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	lsCmd.Flags().BoolVarP(&lsSort, "sort", "s", false, "Sort names")
	lsCmd.Flags().BoolVarP(&lsAll, "all", "a", false, "Include . and ..")
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	names, err := dirent.Names(dir)
	if err != nil {
		logger.Erro("could not read directory %s: %v", dir, err)
		return logging.Reported(eris.Wrapf(err, "could not read directory %s", dir))
	}
	if lsSort {
		sort.Strings(names)
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		if !lsAll && dirent.IsDots(name) {
			continue
		}
		fmt.Fprintln(out, name)
	}
	return nil
}
