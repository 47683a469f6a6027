package provisioning

// Error is an application-layer error that can be mapped to an HTTP response.
// Message is the user-facing string; Code is machine-checkable.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

const (
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeUnidentified     = "UNIDENTIFIED_CALLER"
	CodeNotAdmin         = "NOT_ADMIN"
	CodeEmailRequired    = "EMAIL_REQUIRED"
	CodeDependencyFailed = "DEPENDENCY_FAILED"
)
