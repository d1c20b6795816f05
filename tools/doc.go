// Package tools provides typed agent tools over the MCP services the
// connector manages: Excel workbook operations, Slack messaging, and
// time/timezone lookups, plus a local calculator that needs no subprocess.
//
// Every wrapper converts connector and remote failures into an error tool
// result with a readable message; none of them raise past the agent loop.
package tools
