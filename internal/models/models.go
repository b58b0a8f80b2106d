package models

// User represents a registered account
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Column represents a user-defined tab ("class") that owns tasks
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// Task represents a single task
type Task struct {
	ID          int64  `json:"id"` // millisecond timestamp assigned at creation
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"` // "YYYY-MM-DD", empty if unset
	Status      string `json:"status,omitempty"`  // owning column ID, empty = unsorted
	Color       string `json:"color,omitempty"`   // hex color inherited from the column
	Day         string `json:"day,omitempty"`     // weekday name for the weekly view
}

// Weekdays lists the day names used by the weekly view, Sunday first.
var Weekdays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
