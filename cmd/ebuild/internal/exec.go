package internal

import (
	"sort"

	"github.com/goplus/ebuild/pkgs/logging"
	"github.com/goplus/ebuild/pkgs/proc"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	execLine string
	execDir  string
	execEnv  map[string]string
)

var execCmd = &cobra.Command{
	Use:   "exec [flags] command [args...]",
	Short: "Run a command and fail if it fails",
	Long: `Exec runs a command with the standard streams attached and waits for it.
A nonzero exit status, termination by a signal, or a command that cannot be
started makes ebuild exit with a failure status.`,
	RunE: runExec,
}

func init() {
	execCmd.Flags().SetInterspersed(false)
	execCmd.Flags().StringVarP(&execLine, "command", "c", "", "Command line to split with shell quoting rules")
	execCmd.Flags().StringVarP(&execDir, "dir", "C", "", "Working directory of the command")
	execCmd.Flags().StringToStringVarP(&execEnv, "env", "e", nil, "Extra environment variables (KEY=VALUE)")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	argv := args
	if execLine != "" {
		parsed, err := proc.Command(execLine)
		if err != nil {
			logger.Erro("%v", err)
			return logging.Reported(err)
		}
		argv = append(parsed, args...)
	}
	if len(argv) == 0 {
		return eris.New("exec requires a command")
	}

	if len(execEnv) > 0 {
		keys := make([]string, 0, len(execEnv))
		for k := range execEnv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			logger.Debug("env %s=%s", k, execEnv[k])
		}
	}

	return proc.New(logger).Run(proc.Cmd{
		Args:   argv,
		Dir:    execDir,
		Env:    execEnv,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
}
