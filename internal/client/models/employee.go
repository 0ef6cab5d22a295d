// Package models defines the entities exchanged with the remote data
// service and the inputs of the create forms.
package models

// Employee is a record with its posts in server order.
type Employee struct {
	ID          int    `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Age         int    `json:"age"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	JobLocation string `json:"jobLocation"`
	CreatedAt   Millis `json:"createdAt"`
	Posts       []Post `json:"posts,omitempty"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Post belongs to the employee with EmployeeID; comments are in server order.
type Post struct {
	ID         int       `json:"id"`
	EmployeeID int       `json:"employeeId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  Millis    `json:"createdAt"`
	Comments   []Comment `json:"comments,omitempty"`
}

type Comment struct {
	ID        int    `json:"id"`
	PostID    int    `json:"postId"`
	Content   string `json:"content"`
	CreatedAt Millis `json:"createdAt"`
}

// FindPost returns the employee's post with the given id.
func (e Employee) FindPost(id int) (Post, bool) {
	for _, p := range e.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// Clone returns a deep copy of e.
func (e Employee) Clone() Employee {
	if e.Posts != nil {
		posts := make([]Post, len(e.Posts))
		for i, p := range e.Posts {
			posts[i] = p.Clone()
		}
		e.Posts = posts
	}
	return e
}

// Clone returns a deep copy of p.
func (p Post) Clone() Post {
	if p.Comments != nil {
		p.Comments = append([]Comment(nil), p.Comments...)
	}
	return p
}

// CloneEmployees deep-copies list. A nil list stays nil.
func CloneEmployees(list []Employee) []Employee {
	if list == nil {
		return nil
	}
	out := make([]Employee, len(list))
	for i, e := range list {
		out[i] = e.Clone()
	}
	return out
}
