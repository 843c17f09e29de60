package rpc_types

import "fmt"

// RpcError represents an XRPL RPC error with code and message
type RpcError struct {
	Code        int    `json:"error_code"`
	ErrorString string `json:"error"`
	Type        string `json:"type,omitempty"`
	Message     string `json:"error_message,omitempty"`
}

func (e *RpcError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.ErrorString, e.Message)
	}
	return e.ErrorString
}

// Error codes the client reacts to. They match rippled's error_code values.
const (
	RpcUNKNOWN          = -1
	RpcTOO_BUSY         = 9
	RpcSLOW_DOWN        = 10
	RpcACT_NOT_FOUND    = 19
	RpcLGR_NOT_FOUND    = 21
	RpcNO_CURRENT       = 17
	RpcNO_NETWORK       = 18
	RpcTXN_NOT_FOUND    = 29
	RpcENTRY_NOT_FOUND  = 93
	RpcOBJECT_NOT_FOUND = 92
)

var notFoundTokens = map[string]bool{
	"txnNotFound":    true,
	"actNotFound":    true,
	"lgrNotFound":    true,
	"entryNotFound":  true,
	"objectNotFound": true,
}

// IsNotFound reports whether the server said the requested record does not
// exist.
func (e *RpcError) IsNotFound() bool {
	if e == nil {
		return false
	}
	if notFoundTokens[e.ErrorString] {
		return true
	}
	switch e.Code {
	case RpcACT_NOT_FOUND, RpcLGR_NOT_FOUND, RpcTXN_NOT_FOUND, RpcENTRY_NOT_FOUND, RpcOBJECT_NOT_FOUND:
		return true
	}
	return false
}

// IsTransient reports errors worth retrying on another attempt.
func (e *RpcError) IsTransient() bool {
	if e == nil {
		return false
	}
	switch e.ErrorString {
	case "tooBusy", "slowDown", "noCurrent", "noNetwork", "noClosed":
		return true
	}
	switch e.Code {
	case RpcTOO_BUSY, RpcSLOW_DOWN, RpcNO_CURRENT, RpcNO_NETWORK:
		return true
	}
	return false
}
