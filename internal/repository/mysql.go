package repository

import (
	"context"
	"database/sql"
	"errors"
	"exercise-tracker-service/internal/entity"
	"exercise-tracker-service/internal/sharding"
	"fmt"
	"github.com/google/uuid"
	"strings"
)

const sqlDateLayout = "2006-01-02"

type MySQLRepository struct {
	dbShards []*sql.DB
	router   *sharding.ShardRouter
}

func NewMySQLRepository(dbShards []*sql.DB, router *sharding.ShardRouter) *MySQLRepository {
	return &MySQLRepository{dbShards, router}
}

func (r *MySQLRepository) shardFor(userID string) *sql.DB {
	return r.dbShards[r.router.GetShard(userID)]
}

func (r *MySQLRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	id := uuid.New().String()

	query := `INSERT INTO users (id, username) VALUES (?, ?)`
	_, err := r.shardFor(id).ExecContext(ctx, query, id, user.Username)
	if err != nil {
		return nil, err
	}

	return &entity.User{ID: id, Username: user.Username}, nil
}

func (r *MySQLRepository) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user := &entity.User{}
	query := `SELECT id, username FROM users WHERE id = ?`
	err := r.shardFor(id).QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}

// GetUsers walks every shard in order.
func (r *MySQLRepository) GetUsers(ctx context.Context) ([]*entity.User, error) {
	users := []*entity.User{}

	query := `SELECT id, username FROM users`
	for i, db := range r.dbShards {
		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("shard %d: %w", i, err)
		}

		for rows.Next() {
			var user entity.User
			if err := rows.Scan(&user.ID, &user.Username); err != nil {
				rows.Close()
				return nil, err
			}
			users = append(users, &user)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("shard %d: %w", i, err)
		}
	}

	return users, nil
}

// CreateExercise inserts the entry only if its user exists, in a single statement.
func (r *MySQLRepository) CreateExercise(ctx context.Context, exercise *entity.Exercise) (*entity.Exercise, error) {
	id := uuid.New().String()

	query := `
		INSERT INTO exercises (id, user_id, date, duration, description)
		SELECT ?, id, ?, ?, ? FROM users WHERE id = ?`
	res, err := r.shardFor(exercise.UserID).ExecContext(ctx, query,
		id, exercise.Date.Format(sqlDateLayout), exercise.Duration, exercise.Description, exercise.UserID)
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	created := *exercise
	created.ID = id
	return &created, nil
}

func (r *MySQLRepository) GetExercises(ctx context.Context, userID string, filter entity.LogFilter) ([]*entity.Exercise, error) {
	query, args := exercisesQuery(userID, filter)

	rows, err := r.shardFor(userID).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []*entity.Exercise{}
	for rows.Next() {
		var exercise entity.Exercise
		err := rows.Scan(&exercise.ID, &exercise.UserID, &exercise.Date, &exercise.Duration, &exercise.Description)
		if err != nil {
			return nil, err
		}
		exercise.Date = entity.CalendarDate(exercise.Date)
		exercises = append(exercises, &exercise)
	}

	return exercises, rows.Err()
}

func exercisesQuery(userID string, filter entity.LogFilter) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, user_id, date, duration, description FROM exercises WHERE user_id = ?`)
	args := []interface{}{userID}

	if filter.From != nil {
		sb.WriteString(` AND date >= ?`)
		args = append(args, filter.From.Format(sqlDateLayout))
	}
	if filter.To != nil {
		sb.WriteString(` AND date <= ?`)
		args = append(args, filter.To.Format(sqlDateLayout))
	}
	sb.WriteString(` ORDER BY date, created_at`)
	if filter.Limit > 0 {
		sb.WriteString(` LIMIT ?`)
		args = append(args, filter.Limit)
	}

	return sb.String(), args
}

func (r *MySQLRepository) Close(ctx context.Context) error {
	var errs []error
	for _, db := range r.dbShards {
		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
