package request

type SignUpRequest struct {
	Name     string `json:"name,omitempty" validate:"max=100"`
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=100"`
}

type CreateTodoRequest struct {
	Title       string  `json:"title" validate:"required,max=250"`
	Description *string `json:"description,omitempty"`
}

// UpdateTodoRequest carries a partial update. Nil pointers mean "leave the
// field unchanged". Version is mandatory: it is the optimistic-locking token.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=250"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	Version     *int    `json:"version" validate:"required"`
}

type BulkCreateTodoRequest struct {
	Todos []CreateTodoRequest `json:"todos" validate:"required,min=1,dive"`
}

type BulkDeleteTodoRequest struct {
	Ids []string `json:"ids" validate:"required,min=1"`
}
