package cache

import "fmt"

// QueryKey identifies a cached query result.
type QueryKey string

const EmployeesKey QueryKey = "getEmployees"

func EmployeeKey(id int) QueryKey {
	return QueryKey(fmt.Sprintf("getEmployee(%d)", id))
}

type Kind string

const (
	KindEmployee Kind = "Employee"
	KindPost     Kind = "Post"
	KindComment  Kind = "Comment"
)

// Ref is the identity of a normalized entity.
type Ref struct {
	Kind Kind
	ID   int
}

func (r Ref) String() string { return fmt.Sprintf("%s:%d", r.Kind, r.ID) }

func EmployeeRef(id int) Ref { return Ref{Kind: KindEmployee, ID: id} }
func PostRef(id int) Ref     { return Ref{Kind: KindPost, ID: id} }
func CommentRef(id int) Ref  { return Ref{Kind: KindComment, ID: id} }
