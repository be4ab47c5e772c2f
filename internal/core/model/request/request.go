package request

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=6,max=100"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=100"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required,max=100"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=100"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"max=2000"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	ListID      *string `json:"list_id" validate:"omitempty,uuid"`
}

// UpdateTaskRequest carries PATCH semantics: nil fields stay untouched.
// An empty DueDate clears the due date; an empty ListID dissociates the
// task from its list.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Status      *string `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate     *string `json:"due_date"`
	ListID      *string `json:"list_id"`
}

type ListTasksQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Priority string `form:"priority"`
	ListID   string `form:"list_id"`
}

type CreateListRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Color    *string `json:"color" validate:"omitempty,hexcolor"`
	Position *int    `json:"position" validate:"omitempty,gte=0"`
}

type UpdateListRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Color    *string `json:"color" validate:"omitempty,hexcolor"`
	Position *int    `json:"position" validate:"omitempty,gte=0"`
}
