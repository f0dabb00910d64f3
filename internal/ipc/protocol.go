package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus CommandType = "GET_STATUS"
	CommandRetile    CommandType = "RETILE"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType `json:"command"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// WindowInfo describes one managed window in tiling order.
type WindowInfo struct {
	ID     uint32 `json:"id"`
	Master bool   `json:"master"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// DragInfo describes the active pointer gesture.
type DragInfo struct {
	WindowID uint32 `json:"window_id"`
	Gesture  string `json:"gesture"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning bool         `json:"daemon_running"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	WindowCount   int          `json:"window_count"`
	Windows       []WindowInfo `json:"windows"`
	Drag          *DragInfo    `json:"drag,omitempty"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
