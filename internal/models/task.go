package models

import "time"

// Task is a personal to-do item. Date and Time are kept as the free-form
// strings the clients submit; the server does not interpret them.
type Task struct {
	ID        int       `db:"id" json:"id"`
	OwnerID   int       `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	Date      string    `db:"date" json:"date"`
	Time      string    `db:"time" json:"time"`
	Priority  string    `db:"priority" json:"priority"`
	Workload  string    `db:"workload" json:"workload"`
	Completed bool      `db:"completed" json:"completed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SharedTask is a task shared with the viewing user by a friend.
type SharedTask struct {
	Task
	OwnerUsername string `db:"owner_username" json:"owner_username"`
}
