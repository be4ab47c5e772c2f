package response

import (
	"time"
)

type UserResponse struct {
	UUID        string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ListSummaryResponse struct {
	UUID  string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TaskResponse struct {
	UUID        string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      string               `json:"status"`
	Priority    string               `json:"priority"`
	DueDate     *string              `json:"due_date"`
	CompletedAt *time.Time           `json:"completed_at"`
	List        *ListSummaryResponse `json:"list"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type StatusCountersResponse struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
}

type PaginationResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TaskListPage is the GET /tasks shape: page of tasks plus counters over
// the whole owned set. Search deliberately does not reuse it.
type TaskListPage struct {
	Tasks      []TaskResponse         `json:"tasks"`
	Counters   StatusCountersResponse `json:"counters"`
	Pagination PaginationResponse     `json:"pagination"`
}

type SearchResponse struct {
	Keyword string         `json:"keyword"`
	Tasks   []TaskResponse `json:"tasks"`
}

type ListResponse struct {
	UUID      string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Position  int       `json:"position"`
	TaskCount int       `json:"task_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type HistoryEntryResponse struct {
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

// ListDetailResponse is the create/update shape; task_count only
// appears on the collection listing.
type ListDetailResponse struct {
	UUID      string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Envelope is the uniform wire shape: success with optional data, or an
// error body, never both.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}
