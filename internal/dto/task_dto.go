package dto

// CreateTaskRequest carries the only fields a caller may set on a task.
// Owner is never part of the body; it comes from the authenticated identity.
type CreateTaskRequest struct {
	Description string `json:"description"`
	Completed   *bool  `json:"completed"`
}

// UpdateTaskRequest is the task patch body, strict-decoded against the same
// allow-list as create.
type UpdateTaskRequest struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// ListTasksQuery holds the parsed GET /tasks query parameters.
type ListTasksQuery struct {
	Completed *bool
	SortBy    string
	SortDesc  bool
	Limit     int
	Skip      int
}
