package main

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Jan2821/Jan-OS/finance"
	"github.com/Jan2821/Jan-OS/kit"
)

type fineReq struct {
	ViolationType string `json:"violation_type"`
	SpeedLimit    int    `json:"speed_limit"`
	ActualSpeed   int    `json:"actual_speed"`
}

// registerFineTool exposes the fine schedule over MCP.
func registerFineTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "calculate_fine",
		Description: "Compute the fine in EUR for a traffic violation. Speeding uses the tiered schedule over the speed differential.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"violation_type": map[string]any{"type": "string", "description": "SPEEDING, RED_LIGHT, PARKING or DUI"},
				"speed_limit":    map[string]any{"type": "integer", "description": "Permitted speed in km/h (speeding only)"},
				"actual_speed":   map[string]any{"type": "integer", "description": "Measured speed in km/h (speeding only)"},
			},
			"required": []string{"violation_type"},
		},
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*fineReq)
		amount := finance.FineFor(finance.ViolationKind(r.ViolationType), r.SpeedLimit, r.ActualSpeed)
		return map[string]any{"amount": amount, "currency": "EUR"}, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r fineReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
