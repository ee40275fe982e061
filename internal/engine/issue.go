package engine

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }
