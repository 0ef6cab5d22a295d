package view

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/employeeboard/internal/client/client"
	"github.com/google/uuid"
)

type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
)

// Notification is a transient, dismissable message for the user.
type Notification struct {
	ID      uuid.UUID
	Kind    NotificationKind
	Title   string
	Message string
}

type notifier struct {
	mu    sync.Mutex
	queue []Notification
}

func (n *notifier) push(kind NotificationKind, title, message string) Notification {
	note := Notification{ID: uuid.New(), Kind: kind, Title: title, Message: message}
	n.mu.Lock()
	n.queue = append(n.queue, note)
	n.mu.Unlock()
	return note
}

func (n *notifier) success(title string) {
	n.push(KindSuccess, title, "")
}

func (n *notifier) failure(title string, err error) {
	n.push(KindError, title, client.UserMessage(err))
}

func (n *notifier) pending() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.queue)
}

func (n *notifier) dismiss(id uuid.UUID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	i := slices.IndexFunc(n.queue, func(note Notification) bool { return note.ID == id })
	if i < 0 {
		return false
	}
	n.queue = slices.Delete(n.queue, i, i+1)
	return true
}
