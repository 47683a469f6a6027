package directory

// Error is an application-layer error that can be mapped to an HTTP response.
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
	CodeProfileNotFound  = "PROFILE_NOT_FOUND"
	CodeNotPhotographer  = "NOT_PHOTOGRAPHER"
	CodeNameRequired     = "NAME_REQUIRED"
	CodeDependencyFailed = "DEPENDENCY_FAILED"
)
