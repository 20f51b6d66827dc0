package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/timer"
	"github.com/2beens/fitcalc/internal/validation"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type calculatorRegistry interface {
	List() []calculators.Meta
	Get(slug string) (calculators.Calculator, error)
	Calculate(slug string, raw []byte) (*calculators.Outcome, error)
}

// Handler turns MCP tool calls into calculator and timer calls and formats the results as text.
type Handler struct {
	registry calculatorRegistry
}

func NewHandler(registry calculatorRegistry) *Handler {
	return &Handler{
		registry: registry,
	}
}

type ListCalculatorsInput struct{}

type DescribeCalculatorInput struct {
	Calculator string `json:"calculator" jsonschema:"Calculator slug, as returned by list_calculators (e.g. bmi, tdee, vdot)"`
}

type CalculateInput struct {
	Calculator string         `json:"calculator" jsonschema:"Calculator slug (e.g. bmi)"`
	Input      map[string]any `json:"input" jsonschema:"Input fields keyed by field name, see describe_calculator"`
}

type PlanTimerInput struct {
	Mode      string `json:"mode" jsonschema:"One of: stopwatch, hiit, tabata, emom, amrap"`
	Work      int    `json:"work,omitempty" jsonschema:"Work seconds per round (hiit, tabata)"`
	Rest      *int   `json:"rest,omitempty" jsonschema:"Rest seconds between rounds (hiit, tabata)"`
	Rounds    int    `json:"rounds,omitempty" jsonschema:"Number of rounds (1-100)"`
	Total     int    `json:"total,omitempty" jsonschema:"Total seconds (amrap)"`
	Interval  int    `json:"interval,omitempty" jsonschema:"Seconds per minute-slot (emom)"`
	Countdown *int   `json:"countdown,omitempty" jsonschema:"Countdown cue seconds before each phase ends (0-10)"`
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

// ListCalculatorsTool returns the MCP tool handler for list_calculators.
func (h *Handler) ListCalculatorsTool() func(context.Context, *mcp.CallToolRequest, ListCalculatorsInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListCalculatorsInput) (*mcp.CallToolResult, any, error) {
		return jsonResult(h.registry.List()), nil, nil
	}
}

// DescribeCalculatorTool returns the MCP tool handler for describe_calculator:
// the fields with their ranges and units, then the markdown explanation of the formula.
func (h *Handler) DescribeCalculatorTool() func(context.Context, *mcp.CallToolRequest, DescribeCalculatorInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in DescribeCalculatorInput) (*mcp.CallToolResult, any, error) {
		c, err := h.registry.Get(in.Calculator)
		if err != nil {
			return errorResult(fmt.Sprintf("Unknown calculator %q, use list_calculators", in.Calculator)), nil, nil
		}

		meta := c.Meta()
		fields, err := json.MarshalIndent(meta.Fields, "", "  ")
		if err != nil {
			return errorResult("Error encoding response: " + err.Error()), nil, nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s (%s)\n\n%s\n\n## Fields\n```json\n%s\n```\n\n%s\n",
			meta.Title, meta.Slug, meta.Summary, fields, meta.Markdown())
		return textResult(sb.String()), nil, nil
	}
}

// CalculateTool returns the MCP tool handler for calculate.
func (h *Handler) CalculateTool() func(context.Context, *mcp.CallToolRequest, CalculateInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in CalculateInput) (*mcp.CallToolResult, any, error) {
		input := in.Input
		if input == nil {
			input = map[string]any{}
		}
		raw, err := json.Marshal(input)
		if err != nil {
			return errorResult("Invalid input: " + err.Error()), nil, nil
		}

		outcome, err := h.registry.Calculate(in.Calculator, raw)
		if err != nil {
			if vErr, ok := validation.AsError(err); ok {
				return errorResult(vErr.Error()), nil, nil
			}
			if errors.Is(err, calculators.ErrUnknownCalculator) {
				return errorResult(fmt.Sprintf("Unknown calculator %q, use list_calculators", in.Calculator)), nil, nil
			}
			return errorResult("Error calculating: " + err.Error()), nil, nil
		}
		return jsonResult(outcome), nil, nil
	}
}

// PlanTimerTool returns the MCP tool handler for plan_timer.
func (h *Handler) PlanTimerTool() func(context.Context, *mcp.CallToolRequest, PlanTimerInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in PlanTimerInput) (*mcp.CallToolResult, any, error) {
		plan, err := timer.PlanFor(timer.Config{
			Mode:      timer.Mode(in.Mode),
			Work:      in.Work,
			Rest:      in.Rest,
			Rounds:    in.Rounds,
			Total:     in.Total,
			Interval:  in.Interval,
			Countdown: in.Countdown,
		})
		if err != nil {
			if vErr, ok := validation.AsError(err); ok {
				return errorResult(vErr.Error()), nil, nil
			}
			return errorResult("Invalid timer: " + err.Error()), nil, nil
		}
		return jsonResult(plan), nil, nil
	}
}
