// mock-playwright-server is a test helper binary that implements a minimal
// browser-automation MCP server over stdio. Supports initialize, tools/list,
// and tools/call with a handful of fake playwright tools, so agent plumbing
// can be exercised without a real browser.
//
//go:build ignore

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int64       `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func toolDef(name, description string, props map[string]interface{}) map[string]interface{} {
	if props == nil {
		props = map[string]interface{}{}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": props,
		},
	}
}

func textResult(text string) map[string]interface{} {
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": text},
		},
	}
}

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	// Increase buffer for large messages
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var req request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			continue
		}

		// Skip notifications (no ID)
		if req.ID == nil {
			continue
		}

		var resp response
		resp.JSONRPC = "2.0"
		resp.ID = *req.ID

		switch req.Method {
		case "initialize":
			resp.Result = map[string]interface{}{
				"protocolVersion": "2024-11-05",
				"capabilities": map[string]interface{}{
					"tools": map[string]interface{}{},
				},
				"serverInfo": map[string]interface{}{
					"name":    "mock-playwright-server",
					"version": "1.0.0",
				},
			}

		case "tools/list":
			resp.Result = map[string]interface{}{
				"tools": []map[string]interface{}{
					toolDef("playwright_navigate", "Open a URL in the browser", map[string]interface{}{
						"url": map[string]interface{}{"type": "string"},
					}),
					toolDef("playwright_click", "Click an element by selector", map[string]interface{}{
						"selector": map[string]interface{}{"type": "string"},
					}),
					toolDef("playwright_fill", "Type text into an input", map[string]interface{}{
						"selector": map[string]interface{}{"type": "string"},
						"value":    map[string]interface{}{"type": "string"},
					}),
					toolDef("playwright_screenshot", "Capture the page as base64 PNG", nil),
					toolDef("failing", "Always returns an error", nil),
				},
			}

		case "tools/call":
			var params struct {
				Name      string                 `json:"name"`
				Arguments map[string]interface{} `json:"arguments"`
			}
			json.Unmarshal(req.Params, &params)

			switch params.Name {
			case "playwright_navigate":
				resp.Result = textResult(fmt.Sprintf("navigated to %v", params.Arguments["url"]))

			case "playwright_click":
				resp.Result = textResult(fmt.Sprintf("clicked %v", params.Arguments["selector"]))

			case "playwright_fill":
				resp.Result = textResult(fmt.Sprintf("filled %v", params.Arguments["selector"]))

			case "playwright_screenshot":
				// 1x1 transparent PNG
				resp.Result = textResult("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

			case "failing":
				resp.Result = map[string]interface{}{
					"content": []map[string]interface{}{
						{"type": "text", "text": "something went wrong"},
					},
					"isError": true,
				}

			default:
				resp.Error = map[string]interface{}{
					"code":    -32601,
					"message": fmt.Sprintf("unknown tool %q", params.Name),
				}
			}

		default:
			resp.Error = map[string]interface{}{
				"code":    -32601,
				"message": fmt.Sprintf("method %q not found", req.Method),
			}
		}

		data, _ := json.Marshal(resp)
		fmt.Fprintln(os.Stdout, string(data))
	}
}
