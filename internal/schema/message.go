package schema

// MessageResponse is the acknowledgment body for delete operations.
type MessageResponse struct {
	Message string `json:"message"`
}
