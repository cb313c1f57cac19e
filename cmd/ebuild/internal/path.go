package internal

import (
	"fmt"

	"github.com/goplus/ebuild/ebuild"
	"github.com/spf13/cobra"
)

var joinCmd = &cobra.Command{
	Use:   "join sep item [item...]",
	Short: "Print the items joined by sep",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), ebuild.Join(args[0], args[1:]...))
		return err
	},
}

var pathCmd = &cobra.Command{
	Use:   "path item [item...]",
	Short: "Print the items joined by the path separator",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), ebuild.Path(args...))
		return err
	},
}

var noextCmd = &cobra.Command{
	Use:   "noext path",
	Short: "Print path without its extension",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), ebuild.NoExt(args[0]))
		return err
	},
}

func init() {
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(noextCmd)
}
