// Package agent runs a tool-calling loop over the Anthropic Messages API.
//
// Tools are registered in a [ToolRegistry]: typed Go tools through the
// generic [Tool] interface (their input schema is derived from the struct
// type), and MCP tools through [BridgeTools], which discovers every tool a
// connector's servers advertise and registers each one under the name
// mcp__{server}__{tool}.
//
//	a := agent.New(agent.WithMaxTurns(8))
//	agent.RegisterTool[CalcInput](a.Tools(), &tools.CalculatorTool{})
//	if err := agent.BridgeTools(ctx, a.Tools(), conn, "excel", "time"); err != nil {
//	    log.Fatal(err)
//	}
//	result, err := a.Run(ctx, "What time is it in Tokyo?")
//
// The loop is non-streaming: each turn issues one Messages API call,
// executes any requested tools, and feeds the results back until the model
// stops asking for tools or the turn limit is reached.
package agent
