package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"github.com/spf13/cobra"

	connector "github.com/armatrix/mcp-connect-go"
)

func newDebugCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "debug <server>",
		Short: "Run a configured server in the foreground under a PTY",
		Long: `Spawns the configured command attached to a pseudo-terminal and wires it
to your terminal, so you can type JSON-RPC lines at a server directly and
watch everything it writes. Exit with Ctrl-D.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := connector.LoadRegistry(flags.configPath)
			if err != nil {
				return err
			}
			cfg, ok := registry.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", connector.ErrServerNotConfigured, args[0])
			}

			child := exec.Command(cfg.Command, cfg.Args...)
			child.Env = os.Environ()
			for key, value := range cfg.Env {
				child.Env = append(child.Env, key+"="+value)
			}

			tty, err := pty.Start(child)
			if err != nil {
				return fmt.Errorf("%w: %v", connector.ErrSpawnFailed, err)
			}
			defer tty.Close()

			go func() {
				_, _ = io.Copy(tty, cmd.InOrStdin())
				// Stdin closed; let the child see EOF and exit on its own.
				_ = tty.Close()
			}()
			_, _ = io.Copy(cmd.OutOrStdout(), tty)

			return child.Wait()
		},
	}
}
