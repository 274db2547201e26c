package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	errMissingParams = errors.New("missing required parameters")
	errMissingJobID  = errors.New("job_id is required")
)

func errJobNotFound(id string) error {
	return fmt.Errorf("job %s not found", id)
}

// JSON-RPC 2.0 error codes.
const (
	rpcParseError     = -32700
	rpcInvalidRequest = -32600
	rpcMethodNotFound = -32601
	rpcInvalidParams  = -32602
	rpcServerError    = -32000
)

type rpcRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      interface{}       `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params,omitempty"`
}

// handleJSONRPC serves the JSON-RPC 2.0 endpoint with the solve.start,
// solve.status and solve.cancel methods.
func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var request rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.respondRPCError(w, rpcParseError, "Parse error", nil)
		return
	}
	if request.JSONRPC != "2.0" {
		s.respondRPCError(w, rpcInvalidRequest, "Invalid Request", request.ID)
		return
	}

	var (
		result interface{}
		err    error
	)
	switch request.Method {
	case "solve.start":
		result, err = s.rpcSolveStart(request.Params)
	case "solve.status":
		result, err = s.rpcSolveStatus(request.Params)
	case "solve.cancel":
		result, err = s.rpcSolveCancel(request.Params)
	default:
		s.respondRPCError(w, rpcMethodNotFound, "Method not found", request.ID)
		return
	}
	if err != nil {
		s.respondRPCError(w, rpcServerError, err.Error(), request.ID)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      request.ID,
		"result":  result,
	})
}

func (s *Server) rpcSolveStart(params []json.RawMessage) (interface{}, error) {
	var req SolveRequest
	if err := decodeRPCParam(params, &req); err != nil {
		return nil, err
	}

	job, err := s.startSolve(&req)
	if err != nil {
		return nil, err
	}

	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	return jobView(job), nil
}

func (s *Server) rpcSolveStatus(params []json.RawMessage) (interface{}, error) {
	id, err := decodeRPCJobID(params)
	if err != nil {
		return nil, err
	}

	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, errJobNotFound(id)
	}
	return jobView(job), nil
}

func (s *Server) rpcSolveCancel(params []json.RawMessage) (interface{}, error) {
	id, err := decodeRPCJobID(params)
	if err != nil {
		return nil, err
	}

	s.jobsMu.RLock()
	job, ok := s.jobs[id]
	s.jobsMu.RUnlock()
	if !ok {
		return nil, errJobNotFound(id)
	}
	if err := s.cancelJob(job); err != nil {
		return nil, err
	}

	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	return jobView(job), nil
}

func decodeRPCParam(params []json.RawMessage, v interface{}) error {
	if len(params) == 0 {
		return errMissingParams
	}
	return json.Unmarshal(params[0], v)
}

func decodeRPCJobID(params []json.RawMessage) (string, error) {
	var p struct {
		JobID string `json:"job_id"`
	}
	if err := decodeRPCParam(params, &p); err != nil {
		return "", err
	}
	if p.JobID == "" {
		return "", errMissingJobID
	}
	return p.JobID, nil
}

func (s *Server) respondRPCError(w http.ResponseWriter, code int, message string, id interface{}) {
	// JSON-RPC errors travel in the body; the HTTP status stays 200.
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}
