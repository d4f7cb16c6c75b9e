package repository

import (
	"context"
	"errors"
	"exercise-tracker-service/internal/entity"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	GetUsers(ctx context.Context) ([]*entity.User, error)
}

type ExerciseRepository interface {
	// CreateExercise fails with ErrNotFound when the owning user does not exist, for stores that can check it atomically.
	CreateExercise(ctx context.Context, exercise *entity.Exercise) (*entity.Exercise, error)
	GetExercises(ctx context.Context, userID string, filter entity.LogFilter) ([]*entity.Exercise, error)
}

// Repository is a store holding both collections.
type Repository interface {
	UserRepository
	ExerciseRepository
	Close(ctx context.Context) error
}
