package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the calculator and timer tools.
// Mounted on the backend at /mcp (streamable HTTP) and served over stdio by cmd/fitcalc_mcp.
func NewServer(registry calculatorRegistry, version string) *mcp.Server {
	h := NewHandler(registry)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fitcalc",
		Version: version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_calculators",
		Description: "Lists the fitness and nutrition calculators: slug, title, category, summary. Use first to find the slug for describe_calculator or calculate.",
	}, h.ListCalculatorsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "describe_calculator",
		Description: "Describes one calculator: its input fields (name, type, unit, allowed range or options, default) and how the formula works. Arg: calculator (slug).",
	}, h.DescribeCalculatorTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "calculate",
		Description: "Runs a calculator. Args: calculator (slug), input (object of field values, metric unless units is imperial). Returns the normalized input, the result and a one-line summary.",
	}, h.CalculateTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "plan_timer",
		Description: "Lays out an interval timer (stopwatch, hiit, tabata, emom, amrap) as a list of work/rest segments with offsets and the total duration in seconds. Omitted values use the mode defaults (tabata 20s/10s x 8).",
	}, h.PlanTimerTool())

	return s
}

// NewHTTPHandler serves the MCP server over the streamable HTTP transport.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}
