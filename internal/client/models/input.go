package models

// EmployeeInput is the add-employee form. Tags are checked by forms.Validate.
type EmployeeInput struct {
	FirstName   string `json:"firstName" validate:"required,min=2,max=10,alphaspace"`
	LastName    string `json:"lastName" validate:"required,min=2,max=10,alphaspace"`
	Age         int    `json:"age" validate:"required,min=18,max=100"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	Email       string `json:"email" validate:"required,emailaddr"`
	JobLocation string `json:"jobLocation" validate:"required,min=2"`
}

type PostInput struct {
	EmployeeID int    `json:"employeeId" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

type CommentInput struct {
	PostID  int    `json:"postId" validate:"required"`
	Content string `json:"content" validate:"required"`
}
