package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testMCPImpl = &mcp.Implementation{Name: "export-test", Version: "0.1.0"}

func mcpSession(t *testing.T, ex *Exporter) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testMCPImpl, nil)
	ex.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	var text string
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			text += tc.Text
		}
	}
	return text, result.IsError
}

func TestMCP_ExportDocument(t *testing.T) {
	reg := mountedRegistry(t)
	ex := New(Config{
		Surfaces:    reg,
		Capability:  Available(&fakeEngine{}),
		DownloadDir: t.TempDir(),
	})
	session := mcpSession(t, ex)

	text, isErr := callTool(t, session, "export_document", map[string]any{
		"target_id": "pdf-case-file",
		"filename":  "Akte-AZ-1.pdf",
	})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	var res Result
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		t.Fatalf("unmarshal %q: %v", text, err)
	}
	if res.State != StateDone || res.Pages != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestMCP_ExportUnknownTargetIsToolError(t *testing.T) {
	ex := New(Config{
		Surfaces:    mountedRegistry(t),
		Capability:  Available(&fakeEngine{}),
		DownloadDir: t.TempDir(),
	})
	session := mcpSession(t, ex)

	text, isErr := callTool(t, session, "export_document", map[string]any{
		"target_id": "pdf-nope",
		"filename":  "x.pdf",
	})
	if !isErr {
		t.Fatalf("expected tool error, got %s", text)
	}
	if !strings.Contains(text, "nicht gefunden") {
		t.Errorf("error text = %q", text)
	}
}

func TestMCP_ListRenderTargets(t *testing.T) {
	ex := New(Config{
		Surfaces:    mountedRegistry(t),
		Capability:  Unavailable(),
		DownloadDir: t.TempDir(),
	})
	session := mcpSession(t, ex)

	text, isErr := callTool(t, session, "list_render_targets", map[string]any{})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	if !strings.Contains(text, "pdf-case-file") {
		t.Errorf("targets = %s", text)
	}
}
