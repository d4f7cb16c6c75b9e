package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

var migrations = []struct {
	name  string
	query string
}{
	{
		name: "users",
		query: `
			CREATE TABLE IF NOT EXISTS users (
				id CHAR(36) PRIMARY KEY,
				username VARCHAR(255) NOT NULL
			);`,
	},
	{
		name: "exercises",
		query: `
			CREATE TABLE IF NOT EXISTS exercises (
				id CHAR(36) PRIMARY KEY,
				user_id CHAR(36) NOT NULL,
				date DATE NOT NULL,
				duration INT NOT NULL,
				description TEXT NOT NULL,
				created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
				INDEX user_date_idx (user_id, date)
			);`,
	},
}

// AutoMigrate creates the users and exercises tables on every shard, retrying each statement up to retries times.
func AutoMigrate(ctx context.Context, retries int, dbs ...*sql.DB) error {
	for i, db := range dbs {
		for _, m := range migrations {
			_, err := db.ExecContext(ctx, m.query)
			for attempt := 0; err != nil && attempt < retries; attempt++ {
				time.Sleep(1 * time.Second)
				_, err = db.ExecContext(ctx, m.query)
			}
			if err != nil {
				return fmt.Errorf("migrate %s on shard %d: %w", m.name, i, err)
			}
		}
	}
	return nil
}
