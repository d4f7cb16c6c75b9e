package service

import (
	"context"
	"encoding/json"
	"errors"
	"exercise-tracker-service/internal/entity"
	"exercise-tracker-service/internal/publisher"
	"exercise-tracker-service/internal/repository"
	"fmt"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"os"
	"strconv"
	"strings"
	"time"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    string
	Date        string
}

type LogQuery struct {
	UserID string
	From   string
	To     string
	Limit  string
}

// ExerciseService is the layer between the HTTP handlers and the stores.
type ExerciseService struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	rdb       *redis.Client
	cacheTTL  time.Duration
	publisher publisher.Publisher
	now       func() time.Time
}

// NewExerciseService creates a new instance of ExerciseService. rdb may be nil to disable the user cache.
func NewExerciseService(users repository.UserRepository, exercises repository.ExerciseRepository, rdb *redis.Client, cacheTTL time.Duration, pub publisher.Publisher) *ExerciseService {
	if pub == nil {
		pub = publisher.NoopPublisher{}
	}
	return &ExerciseService{
		users:     users,
		exercises: exercises,
		rdb:       rdb,
		cacheTTL:  cacheTTL,
		publisher: pub,
		now:       time.Now,
	}
}

// CreateUser stores a new user.
func (s *ExerciseService) CreateUser(ctx context.Context, username string) (*entity.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, invalid("username", "username is required")
	}

	user, err := s.users.CreateUser(ctx, &entity.User{Username: username})
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.cacheUser(ctx, user)
	s.publish(ctx, publisher.EventUserCreated, user.ID, user)

	return user, nil
}

// GetUsers lists every user.
func (s *ExerciseService) GetUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.users.GetUsers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting users")
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []*entity.User{}
	}

	return users, nil
}

// AddExercise validates the input, resolves the user and stores a log entry for it.
func (s *ExerciseService) AddExercise(ctx context.Context, in AddExerciseInput) (*entity.User, *entity.Exercise, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, nil, invalid("userId", "userId is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, nil, invalid("description", "description is required")
	}
	if strings.TrimSpace(in.Duration) == "" {
		return nil, nil, invalid("duration", "duration is required")
	}
	duration, err := strconv.Atoi(strings.TrimSpace(in.Duration))
	if err != nil {
		return nil, nil, invalid("duration", "duration must be an integer")
	}

	date := entity.CalendarDate(s.now().UTC())
	if strings.TrimSpace(in.Date) != "" {
		date, err = entity.ParseDate(in.Date)
		if err != nil {
			return nil, nil, invalid("date", "date is invalid")
		}
	}

	user, err := s.getUser(ctx, in.UserID)
	if err != nil {
		return nil, nil, err
	}

	exercise, err := s.exercises.CreateExercise(ctx, &entity.Exercise{
		UserID:      user.ID,
		Date:        date,
		Duration:    duration,
		Description: in.Description,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		logger.Error().Err(err).Msgf("Error creating exercise for user %s", user.ID)
		return nil, nil, fmt.Errorf("create exercise: %w", err)
	}

	s.publish(ctx, publisher.EventExerciseAdded, exercise.ID, exercise)

	return user, exercise, nil
}

// GetLog returns the user's entries between the optional inclusive date bounds, capped by the optional limit.
func (s *ExerciseService) GetLog(ctx context.Context, q LogQuery) (*entity.User, []*entity.Exercise, error) {
	if strings.TrimSpace(q.UserID) == "" {
		return nil, nil, invalid("userId", "userId is required")
	}

	var filter entity.LogFilter
	if strings.TrimSpace(q.From) != "" {
		from, err := entity.ParseDate(q.From)
		if err != nil {
			return nil, nil, invalid("from", "from is not a valid date")
		}
		filter.From = &from
	}
	if strings.TrimSpace(q.To) != "" {
		to, err := entity.ParseDate(q.To)
		if err != nil {
			return nil, nil, invalid("to", "to is not a valid date")
		}
		filter.To = &to
	}
	if strings.TrimSpace(q.Limit) != "" {
		limit, err := strconv.Atoi(strings.TrimSpace(q.Limit))
		if err != nil || limit < 1 {
			return nil, nil, invalid("limit", "limit must be a positive integer")
		}
		filter.Limit = limit
	}

	user, err := s.getUser(ctx, q.UserID)
	if err != nil {
		return nil, nil, err
	}

	exercises, err := s.exercises.GetExercises(ctx, user.ID, filter)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting exercises for user %s", user.ID)
		return nil, nil, fmt.Errorf("get exercises: %w", err)
	}
	if exercises == nil {
		exercises = []*entity.Exercise{}
	}

	return user, exercises, nil
}

func userCacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

// getUser resolves a user, reading through the cache when one is configured. Users are never mutated, so cached entries cannot go stale.
func (s *ExerciseService) getUser(ctx context.Context, id string) (*entity.User, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, userCacheKey(id)).Result()
		switch {
		case err == nil:
			var user entity.User
			if err := json.Unmarshal([]byte(cached), &user); err == nil {
				return &user, nil
			}
			logger.Warn().Msgf("Discarding unreadable cache entry for user %s", id)
		case errors.Is(err, redis.Nil):
		default:
			logger.Error().Err(err).Msgf("Error getting user %s from cache", id)
		}
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %s", id)
		return nil, fmt.Errorf("get user: %w", err)
	}

	s.cacheUser(ctx, user)
	return user, nil
}

func (s *ExerciseService) cacheUser(ctx context.Context, user *entity.User) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, userCacheKey(user.ID), data, s.cacheTTL).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error setting user %s in cache", user.ID)
	}
}

// publish never fails the caller: the record is already stored.
func (s *ExerciseService) publish(ctx context.Context, event, id string, payload interface{}) {
	if err := s.publisher.Publish(ctx, event, id, payload); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s event for %s", event, id)
	}
}
