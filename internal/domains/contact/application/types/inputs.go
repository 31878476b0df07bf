package types

// SubmitMessageInput carries the public contact form.
type SubmitMessageInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// ListMessagesQuery selects a page of messages.
type ListMessagesQuery struct {
	Page       int
	Limit      int
	UnreadOnly bool
}
