package entity

import "time"

// Exercise is one entry in a user's exercise log.
type Exercise struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Date        time.Time `json:"date"`
	Duration    int       `json:"duration"` // minutes
	Description string    `json:"description"`
}

// LogFilter narrows a log query. Zero values mean "no bound".
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

/*
Mongo collection "logs":
	{ _id: ObjectId, userid: string, date: Date, duration: int, description: string }

Mysql Table (one per shard, colocated with the owning user):
CREATE TABLE exercises (
	id CHAR(36) PRIMARY KEY,
	user_id CHAR(36) NOT NULL,
	date DATE NOT NULL,
	duration INT NOT NULL,
	description TEXT NOT NULL,
	created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
	INDEX user_date_idx (user_id, date)
);
*/
