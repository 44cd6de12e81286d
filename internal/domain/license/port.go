package license

import "context"

// Action names one license server operation.
type Action string

const (
	ActionValidate   Action = "validate"
	ActionActivate   Action = "activate"
	ActionDeactivate Action = "deactivate"
)

// Request carries the fields the license server accepts; which are
// required depends on the action.
type Request struct {
	LicenseKey   string `json:"license_key"`
	InstanceID   string `json:"instance_id,omitempty"`
	InstanceName string `json:"instance_name,omitempty"`
}

// Response is the upstream answer, relayed to the client unchanged.
type Response struct {
	StatusCode int
	Body       []byte
}

// Server is the remote license authority.
type Server interface {
	Call(ctx context.Context, action Action, req Request) (Response, error)
}
