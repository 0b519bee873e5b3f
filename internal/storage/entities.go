package storage

// todoRecord is the persisted shape of one todo. DueDate holds ISO-8601
// date-time text and is omitted when the todo has no due date.
type todoRecord struct {
	ID        int64   `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	DueDate   *string `json:"dueDate,omitempty"`
}
