package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"time"
)

const maxBodyBytes = 8 << 20

var (
	// ErrInvalidToolCall reports a request without a tool_call object.
	ErrInvalidToolCall = errors.New("invalid tool_call payload")
	// ErrUnknownTool reports a tool_call naming an unregistered tool.
	ErrUnknownTool = errors.New("unknown tool")
)

// Handler routes health checks, tool calls and generated files.
type Handler struct {
	cfg   Config
	tools map[string]Tool
	mux   *http.ServeMux
}

type toolCall struct {
	Name any             `json:"name"`
	Args json.RawMessage `json:"args"`
}

type toolResult struct {
	Name   string `json:"name"`
	Result any    `json:"result"`
}

// NewHandler builds the tool server. Zero fields in cfg take their
// DefaultConfig values.
func NewHandler(cfg Config) *Handler {
	resolved := DefaultConfig()
	applyConfig(&resolved, cfg)
	h := &Handler{cfg: resolved, mux: http.NewServeMux()}
	h.tools = map[string]Tool{GeneratePDFTool: h.generatePDF}

	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("POST /tool-exec", h.handleToolExec)
	for _, name := range []string{primaryDirName, fallbackDirName} {
		prefix := "/" + name + "/"
		dir := filepath.Join(resolved.PublicDir, name)
		h.mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(dir))))
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Tools returns the registered tool names, sorted.
func (h *Handler) Tools() []string {
	names := make([]string, 0, len(h.tools))
	for name := range h.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "tools": h.Tools()})
}

func (h *Handler) handleToolExec(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ToolCall json.RawMessage `json:"tool_call"`
	}
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&payload); err != nil || !isJSONObject(payload.ToolCall) {
		writeError(w, http.StatusBadRequest, ErrInvalidToolCall.Error())
		return
	}
	var call toolCall
	if err := json.Unmarshal(payload.ToolCall, &call); err != nil {
		writeError(w, http.StatusBadRequest, ErrInvalidToolCall.Error())
		return
	}
	name, _ := call.Name.(string)
	tool, ok := h.tools[name]
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: %s", ErrUnknownTool, displayName(call.Name)))
		return
	}
	args := map[string]any{}
	if isJSONObject(call.Args) {
		_ = json.Unmarshal(call.Args, &args)
	}
	start := time.Now()
	result, err := tool(r.Context(), args)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("tool timed out after %s: %w", h.cfg.Timeout, err)
		}
		h.cfg.Logger.Printf("%s failed after %s: %v", name, time.Since(start).Round(time.Millisecond), err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "tool execution failed",
			"details": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"toolResult": toolResult{Name: name, Result: result}})
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func displayName(v any) string {
	switch t := v.(type) {
	case nil:
		return "undefined"
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

