package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newShellCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session for starting servers and calling tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := flags.open()
			if err != nil {
				return err
			}
			defer c.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "mcpconnect shell. Type 'help' for commands, 'quit' to exit.")

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) == 0 {
					continue
				}

				switch fields[0] {
				case "quit", "exit":
					return nil

				case "help":
					fmt.Fprint(out, shellHelp)

				case "list":
					for _, name := range c.Registry().Names() {
						fmt.Fprintf(out, "%-12s %s\n", name, c.Status(name))
					}

				case "start":
					if len(fields) != 2 {
						fmt.Fprintln(out, "usage: start <server>")
						continue
					}
					if err := c.Start(cmd.Context(), fields[1]); err != nil {
						fmt.Fprintln(out, "error:", err)
						continue
					}
					fmt.Fprintf(out, "%s: %s\n", fields[1], c.Status(fields[1]))

				case "stop":
					if len(fields) != 2 {
						fmt.Fprintln(out, "usage: stop <server>")
						continue
					}
					if err := c.Stop(fields[1]); err != nil {
						fmt.Fprintln(out, "error:", err)
					}

				case "tools":
					if len(fields) != 2 {
						fmt.Fprintln(out, "usage: tools <server>")
						continue
					}
					tools, err := c.ListTools(cmd.Context(), fields[1])
					if err != nil {
						fmt.Fprintln(out, "error:", err)
						continue
					}
					for _, tool := range tools {
						fmt.Fprintf(out, "%-32s %s\n", tool.Name, tool.Description)
					}

				case "call":
					if len(fields) < 3 {
						fmt.Fprintln(out, "usage: call <server> <tool> [json-args]")
						continue
					}
					var toolArgs map[string]any
					if len(fields) > 3 {
						raw := strings.Join(fields[3:], " ")
						if err := json.Unmarshal([]byte(raw), &toolArgs); err != nil {
							fmt.Fprintln(out, "error: bad json args:", err)
							continue
						}
					}
					result, err := c.CallTool(cmd.Context(), fields[1], fields[2], toolArgs)
					if err != nil {
						fmt.Fprintln(out, "error:", err)
						continue
					}
					if err := printJSON(cmd, result); err != nil {
						fmt.Fprintln(out, "error:", err)
					}

				default:
					fmt.Fprintf(out, "unknown command %q, try 'help'\n", fields[0])
				}
			}
		},
	}
}

const shellHelp = `commands:
  list                              configured servers and status
  start <server>                    spawn a server and run its handshake
  stop <server>                     terminate a running server
  tools <server>                    list the tools a server advertises
  call <server> <tool> [json-args]  invoke one tool
  quit                              stop all servers and exit
`
