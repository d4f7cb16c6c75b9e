package entity

type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

/*
Mongo collection "users":
	{ _id: ObjectId, username: string }

Mysql Table (one per shard):
CREATE TABLE users (
	id CHAR(36) PRIMARY KEY,
	username VARCHAR(255) NOT NULL
);
*/
