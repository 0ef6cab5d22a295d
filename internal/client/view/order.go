package view

import (
	"cmp"
	"slices"

	"github.com/dmitrijs2005/employeeboard/internal/client/models"
)

// sortByIDDesc returns a copy of list with the newest id first.
func sortByIDDesc(list []models.Employee) []models.Employee {
	out := models.CloneEmployees(list)
	if out == nil {
		out = []models.Employee{}
	}
	slices.SortStableFunc(out, func(a, b models.Employee) int {
		return cmp.Compare(b.ID, a.ID)
	})
	return out
}

// reversed returns the comments in reverse of the given order. It never
// returns nil.
func reversed(comments []models.Comment) []models.Comment {
	out := make([]models.Comment, len(comments))
	for i, c := range comments {
		out[len(comments)-1-i] = c
	}
	return out
}

// ownedBy drops posts and comments whose parent reference names another
// entity than the one they are nested under, and reports how many were
// dropped. A missing (zero) parent reference is taken from the nesting.
func ownedBy(e models.Employee) (models.Employee, int) {
	e = e.Clone()
	dropped := 0
	posts := e.Posts[:0:0]
	for _, p := range e.Posts {
		if p.EmployeeID == 0 {
			p.EmployeeID = e.ID
		}
		if p.EmployeeID != e.ID {
			dropped++
			continue
		}
		comments := p.Comments[:0:0]
		for _, c := range p.Comments {
			if c.PostID == 0 {
				c.PostID = p.ID
			}
			if c.PostID != p.ID {
				dropped++
				continue
			}
			comments = append(comments, c)
		}
		if p.Comments != nil {
			p.Comments = comments
		}
		posts = append(posts, p)
	}
	if e.Posts != nil {
		e.Posts = posts
	}
	return e, dropped
}

func withoutPost(e models.Employee, id int) models.Employee {
	e.Posts = slices.DeleteFunc(slices.Clone(e.Posts), func(p models.Post) bool { return p.ID == id })
	return e
}
