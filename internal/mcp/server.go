// Package mcp implements the Model Context Protocol transport for the
// booking tool gateway: JSON-RPC 2.0 over HTTP POST, with session
// tracking via the Mcp-Session-Id header.
package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	httpmiddleware "github.com/appointly/booking-mcp/internal/http"
	"github.com/appointly/booking-mcp/internal/telemetry"
	"github.com/appointly/booking-mcp/internal/tools"
)

const protocolVersion = "2025-03-26"

const sessionHeader = "Mcp-Session-Id"

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server translates JSON-RPC requests into registry calls and registry
// results into JSON-RPC responses.
type Server struct {
	registry *tools.Registry
	sessions SessionStore
	name     string
	version  string
}

// NewServer creates an MCP server over the given tool registry and
// session store.
func NewServer(registry *tools.Registry, sessions SessionStore, name, version string) *Server {
	return &Server{
		registry: registry,
		sessions: sessions,
		name:     name,
		version:  version,
	}
}

// ServeHTTP handles one MCP request. POST carries JSON-RPC messages;
// DELETE ends the session named by the Mcp-Session-Id header.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleRPC(w, r)
	case http.MethodDelete:
		s.handleEndSession(w, r)
	default:
		w.Header().Set("Allow", "POST, DELETE")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(ctx, w, http.StatusOK, &rpcResponse{
			JSONRPC: "2.0",
			ID:      json.RawMessage("null"),
			Error:   &rpcError{Code: codeParseError, Message: "parse error: " + err.Error()},
		})
		return
	}

	// Notifications carry no id and expect no body.
	if len(req.ID) == 0 {
		s.touchSession(ctx, r)
		w.WriteHeader(http.StatusAccepted)
		return
	}

	switch req.Method {
	case "initialize":
		s.handleInitialize(ctx, w, r, &req)
	case "ping":
		s.touchSession(ctx, r)
		writeResult(ctx, w, &req, struct{}{})
	case "tools/list":
		s.touchSession(ctx, r)
		writeResult(ctx, w, &req, map[string]any{"tools": s.registry.Tools()})
	case "tools/call":
		s.touchSession(ctx, r)
		s.handleToolsCall(ctx, w, &req)
	default:
		writeResponse(ctx, w, http.StatusOK, &rpcResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: codeMethodNotFound, Message: "method not found: " + req.Method},
		})
	}
}

type initializeParams struct {
	ProtocolVersion string `json:"protocolVersion"`
	ClientInfo      struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"clientInfo"`
}

func (s *Server) handleInitialize(ctx context.Context, w http.ResponseWriter, r *http.Request, req *rpcRequest) {
	var params initializeParams
	if len(req.Params) > 0 {
		// Unknown fields are tolerated; clients vary.
		_ = json.Unmarshal(req.Params, &params)
	}

	now := time.Now()
	session := &Session{
		SessionID:  uuid.New(),
		ClientName: params.ClientInfo.Name,
		ClientIP:   httpmiddleware.ClientIPFromContext(ctx),
		CreatedAt:  now,
		LastUsedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to create session")
		http.Error(w, "session store failure", http.StatusInternalServerError)
		return
	}
	telemetry.GetMetrics().ActiveSessions.Add(ctx, 1)

	zerolog.Ctx(ctx).Info().
		Str("session_id", session.SessionID.String()).
		Str("client", params.ClientInfo.Name).
		Msg("Session initialized")

	w.Header().Set(sessionHeader, session.SessionID.String())
	writeResult(ctx, w, req, map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    s.name,
			"version": s.version,
		},
	})
}

type toolsCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (s *Server) handleToolsCall(ctx context.Context, w http.ResponseWriter, req *rpcRequest) {
	var params toolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
		writeResponse(ctx, w, http.StatusOK, &rpcResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: codeInvalidParams, Message: "invalid params: name is required"},
		})
		return
	}

	result, err := s.registry.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		writeResponse(ctx, w, http.StatusOK, &rpcResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: codeInvalidParams, Message: err.Error()},
		})
		return
	}

	writeResult(ctx, w, req, result)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := uuid.Parse(r.Header.Get(sessionHeader))
	if err != nil {
		http.Error(w, "missing or invalid session id", http.StatusBadRequest)
		return
	}

	if err := s.sessions.Evict(ctx, sessionID); err != nil {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	telemetry.GetMetrics().ActiveSessions.Add(ctx, -1)

	zerolog.Ctx(ctx).Info().Str("session_id", sessionID.String()).Msg("Session ended")
	w.WriteHeader(http.StatusNoContent)
}

// touchSession refreshes the session named by the request header, if
// any. Clients that skip initialize still get their calls served.
func (s *Server) touchSession(ctx context.Context, r *http.Request) {
	header := r.Header.Get(sessionHeader)
	if header == "" {
		return
	}
	sessionID, err := uuid.Parse(header)
	if err != nil {
		return
	}
	if err := s.sessions.Touch(ctx, sessionID); err != nil {
		zerolog.Ctx(ctx).Debug().Str("session_id", header).Msg("Touch on unknown session")
	}
}

func writeResult(ctx context.Context, w http.ResponseWriter, req *rpcRequest, result any) {
	writeResponse(ctx, w, http.StatusOK, &rpcResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	})
}

func writeResponse(ctx context.Context, w http.ResponseWriter, status int, resp *rpcResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to encode response")
	}
}
