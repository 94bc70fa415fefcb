package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=255"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest defines the payload for the logout endpoint. The access
// token is taken from the Authorization header.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT token used to obtain new token pairs
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// UserResponse defines the user profile shape returned by /users/me.
// The password hash never leaves the server.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse converts a domain user to its API representation.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UpdateUserRequest defines the payload for profile updates. All fields are
// optional; absent fields leave the stored value unchanged. A new password
// replaces the old one.
type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=255"`
	Password *string `json:"password"  validate:"omitempty,min=8,max=72"`
}

// CreateTaskRequest defines the payload for task creation.
type CreateTaskRequest struct {
	Title string     `json:"title"  validate:"required,min=1,max=255"`
	Body  *string    `json:"body"   validate:"omitempty"`
	DueAt *time.Time `json:"due_at" validate:"omitempty"`
}

// UpdateTaskRequest defines the payload for task updates. All fields are
// optional; absent fields leave the stored value unchanged.
type UpdateTaskRequest struct {
	Title  *string    `json:"title"   validate:"omitempty,min=1,max=255"`
	Body   *string    `json:"body"    validate:"omitempty"`
	DueAt  *time.Time `json:"due_at"  validate:"omitempty"`
	IsDone *bool      `json:"is_done" validate:"omitempty"`
}

// TaskResponse defines the task shape returned by the task endpoints.
type TaskResponse struct {
	ID        uuid.UUID  `json:"id"`
	OwnerID   uuid.UUID  `json:"owner_id"`
	Title     string     `json:"title"`
	Body      *string    `json:"body"`
	DueAt     *time.Time `json:"due_at"`
	IsDone    bool       `json:"is_done"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewTaskResponse converts a domain task to its API representation.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		OwnerID:   task.OwnerID,
		Title:     task.Title,
		Body:      task.Body,
		DueAt:     task.DueAt,
		IsDone:    task.IsDone,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// TaskListResponse defines the paginated task listing shape.
type TaskListResponse struct {
	// Total is the number of tasks matching the filter across all pages.
	Total int `json:"total"`

	// Items is the current page.
	Items []TaskResponse `json:"items"`
}

// NewTaskListResponse converts a store page to its API representation.
// Items is always a JSON array, never null.
func NewTaskListResponse(page *store.TaskPage) TaskListResponse {
	items := make([]TaskResponse, 0, len(page.Tasks))
	for _, task := range page.Tasks {
		items = append(items, NewTaskResponse(task))
	}
	return TaskListResponse{
		Total: page.Total,
		Items: items,
	}
}
