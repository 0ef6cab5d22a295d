package models

import "time"

type Employee struct {
	ID          int64
	FirstName   string
	LastName    string
	Age         int
	PhoneNumber string
	Email       string
	JobLocation string
	CreatedAt   time.Time
}

type Post struct {
	ID         int64
	EmployeeID int64
	Title      string
	Content    string
	CreatedAt  time.Time
}

type Comment struct {
	ID        int64
	PostID    int64
	Content   string
	CreatedAt time.Time
}
