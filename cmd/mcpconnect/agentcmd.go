package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/armatrix/mcp-connect-go/agent"
	"github.com/armatrix/mcp-connect-go/tools"
)

func newAgentCmd(flags *rootFlags) *cobra.Command {
	var (
		prompt   string
		model    string
		system   string
		maxTurns int
		servers  []string
	)

	cmd := &cobra.Command{
		Use:   "agent -p <prompt>",
		Short: "Run a tool-calling agent over the configured servers",
		Long: `Runs a Claude tool-calling loop with the built-in tools plus every
tool advertised by the configured MCP servers. Requires ANTHROPIC_API_KEY.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if prompt == "" {
				return fmt.Errorf("a prompt is required, pass it with -p")
			}
			if os.Getenv("ANTHROPIC_API_KEY") == "" {
				return fmt.Errorf("ANTHROPIC_API_KEY is not set")
			}

			c, err := flags.open()
			if err != nil {
				return err
			}
			defer c.Close()

			opts := []agent.Option{
				agent.WithLogger(slog.Default()),
				agent.WithMaxTurns(maxTurns),
			}
			if model != "" {
				opts = append(opts, agent.WithModel(anthropic.Model(model)))
			}
			if system != "" {
				opts = append(opts, agent.WithSystemPrompt(system))
			}
			a := agent.New(opts...)

			tools.RegisterAll(a.Tools(), c)
			if len(servers) == 0 {
				servers = c.Registry().Names()
			}
			if err := agent.BridgeTools(cmd.Context(), a.Tools(), c, servers...); err != nil {
				return err
			}

			result, err := a.Run(cmd.Context(), prompt)
			if err != nil && !errors.Is(err, agent.ErrMaxTurns) {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.TrimSpace(result.Text))
			fmt.Fprintf(cmd.ErrOrStderr(), "turns=%d input_tokens=%d output_tokens=%d cost=$%s\n",
				result.NumTurns, result.Usage.InputTokens, result.Usage.OutputTokens,
				result.Cost.StringFixed(4))
			return err
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "the user prompt to run")
	cmd.Flags().StringVar(&model, "model", "", "override the model")
	cmd.Flags().StringVar(&system, "system", "", "system prompt")
	cmd.Flags().IntVar(&maxTurns, "max-turns", agent.DefaultMaxTurns, "maximum agent turns")
	cmd.Flags().StringSliceVar(&servers, "servers", nil,
		"servers whose tools to bridge (default: all configured)")
	return cmd
}
