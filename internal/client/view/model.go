// Package view keeps the client's view model consistent with the remote
// data service across create and delete mutations.
//
// Employee and post mutations re-run the affected read and replace the
// whole list or detail. Comment mutations re-fetch the owning employee and
// extract the selected post's comments, leaving the selection alone.
package view

import "github.com/dmitrijs2005/employeeboard/internal/client/models"

// EmployeeList is the list view. Items are sorted by id descending.
type EmployeeList struct {
	Items  []models.Employee
	Err    error
	Loaded bool
}

// EmployeeDetail is the detail view of one employee, optionally with a
// selected post.
type EmployeeDetail struct {
	ID       int
	Employee models.Employee
	Loaded   bool
	Err      error
	Post     *PostDetail
}

// PostDetail holds the selected post. Comments are the reverse of the
// server order.
type PostDetail struct {
	Post     models.Post
	Comments []models.Comment
	// Pending is set while a comment submission for this post is in flight.
	Pending bool
}

// View is a snapshot of the whole view model. Detail is nil when no
// employee is open.
type View struct {
	List   EmployeeList
	Detail *EmployeeDetail
}

func (d *EmployeeDetail) clone() *EmployeeDetail {
	if d == nil {
		return nil
	}
	out := *d
	out.Employee = d.Employee.Clone()
	if d.Post != nil {
		p := *d.Post
		p.Post = d.Post.Post.Clone()
		p.Comments = append([]models.Comment{}, d.Post.Comments...)
		out.Post = &p
	}
	return &out
}
