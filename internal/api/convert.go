package api

import (
	authentity "task_backend/internal/feature/auth/domain/entity"
	taskentity "task_backend/internal/feature/task/domain/entity"
)

// NewUserResponse converts a user entity to its outward representation.
func NewUserResponse(u *authentity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewTaskResponse converts a task entity to its outward representation.
func NewTaskResponse(t *taskentity.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Description: t.Description,
		Completed:   t.Completed,
		Owner:       t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTaskListResponse converts tasks in order; an empty result becomes an empty JSON array.
func NewTaskListResponse(tasks []taskentity.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return out
}
