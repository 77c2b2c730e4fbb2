package export

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Jan2821/Jan-OS/kit"
)

// RegisterMCP registers export tools on an MCP server.
func (e *Exporter) RegisterMCP(srv *mcp.Server) {
	e.registerExportTool(srv)
	e.registerTargetsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// --- export ---

type exportReq struct {
	TargetID string `json:"target_id"`
	Filename string `json:"filename"`
}

func (e *Exporter) registerExportTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "export_document",
		Description: "Capture a mounted render target as a PDF and save it to the downloads directory.",
		InputSchema: inputSchema(map[string]any{
			"target_id": map[string]any{"type": "string", "description": "Render target id, e.g. pdf-case-file"},
			"filename":  map[string]any{"type": "string", "description": "Output filename, .pdf enforced"},
		}, []string{"target_id", "filename"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*exportReq)
		res := e.Export(ctx, Descriptor{TargetID: r.TargetID, Filename: r.Filename})
		if !res.Ok() {
			return nil, res.Err
		}
		return res, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r exportReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		enrich := func(ctx context.Context) context.Context {
			return kit.WithTransport(ctx, "mcp_stdio")
		}
		return &kit.MCPDecodeResult{Request: &r, EnrichCtx: enrich}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- targets ---

func (e *Exporter) registerTargetsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "list_render_targets",
		Description: "List the render target ids currently mounted and exportable.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(_ context.Context, _ any) (any, error) {
		return map[string]any{"targets": e.cfg.Surfaces.IDs()}, nil
	}

	decode := func(_ *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
