package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	connector "github.com/armatrix/mcp-connect-go"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "mcpconnect",
		Short:         "Manage and call MCP tool servers over stdio",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c",
		connector.DefaultConfigPath, "path to the mcp_servers config file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"enable debug logging")

	cmd.AddCommand(
		newListCmd(flags),
		newToolsCmd(flags),
		newStartCmd(flags),
		newStopCmd(flags),
		newStatusCmd(flags),
		newCallCmd(flags),
		newShellCmd(flags),
		newAgentCmd(flags),
		newDebugCmd(flags),
	)
	return cmd
}

// open builds a Connector from the global flags. Callers must Close it.
func (f *rootFlags) open() (*connector.Connector, error) {
	return connector.New(connector.WithConfigPath(f.configPath))
}

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured servers and their status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := flags.open()
			if err != nil {
				return err
			}
			defer c.Close()

			for _, name := range c.Registry().Names() {
				cfg, _ := c.Registry().Get(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-8s %s %v\n",
					name, c.Status(name), cfg.Command, cfg.Args)
			}
			return nil
		},
	}
}

func newToolsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tools <server>",
		Short: "List the tools a server advertises",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.open()
			if err != nil {
				return err
			}
			defer c.Close()

			tools, err := c.ListTools(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, tool := range tools {
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", tool.Name, tool.Description)
			}
			return nil
		},
	}
}

func newStartCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "start <server>...",
		Short: "Start one or more servers and verify their handshake",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.open()
			if err != nil {
				return err
			}
			defer c.Close()

			for _, name := range args {
				if err := c.Start(cmd.Context(), name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, c.Status(name))
			}
			return nil
		},
	}
}

func newStopCmd(flags *rootFlags) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "stop [server]",
		Short: "Stop a server, or every running server with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.open()
			if err != nil {
				return err
			}
			defer c.Close()

			if all {
				return c.StopAll()
			}
			if len(args) == 0 {
				return fmt.Errorf("specify a server name or --all")
			}
			return c.Stop(args[0])
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "stop every running server")
	return cmd
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the status of every configured server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := flags.open()
			if err != nil {
				return err
			}
			defer c.Close()

			for _, name := range c.Registry().Names() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", name, c.Status(name))
			}
			return nil
		},
	}
}

func newCallCmd(flags *rootFlags) *cobra.Command {
	var argsJSON string
	cmd := &cobra.Command{
		Use:   "call <server> <tool>",
		Short: "Call one tool and print the raw result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.open()
			if err != nil {
				return err
			}
			defer c.Close()

			var toolArgs map[string]any
			if argsJSON != "" {
				if err := json.Unmarshal([]byte(argsJSON), &toolArgs); err != nil {
					return fmt.Errorf("parsing --args: %w", err)
				}
			}

			result, err := c.CallTool(cmd.Context(), args[0], args[1], toolArgs)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().StringVar(&argsJSON, "args", "", "tool arguments as a JSON object")
	return cmd
}

func printJSON(cmd *cobra.Command, raw json.RawMessage) error {
	var buf any
	if err := json.Unmarshal(raw, &buf); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	}
	pretty, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
	return nil
}
