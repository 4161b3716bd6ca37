package domain

import "time"

// NotificationType is the closed enum of business events a notification can
// describe. Notifications are only ever created as a side effect of one of
// these events, never directly by a client.
type NotificationType string

const (
	NotificationTeamAdded          NotificationType = "team_added"
	NotificationInvitationDeclined NotificationType = "invitation_declined"
	NotificationTaskAssigned       NotificationType = "task_assigned"
	NotificationTaskCompleted      NotificationType = "task_completed"
	NotificationCommentAdded       NotificationType = "comment_added"
)

// NotificationPriority orders notifications in the client.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// Related record kinds for the polymorphic reference.
const (
	RelatedUser       = "user"
	RelatedProject    = "project"
	RelatedTask       = "task"
	RelatedInvitation = "invitation"
)

type Notification struct {
	ID          string
	UserID      string // recipient and owner
	Title       string
	Message     string
	Type        NotificationType
	Priority    NotificationPriority
	RelatedID   string
	RelatedType string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// NotificationEvent is what a domain event hands the notifier; the notifier
// assigns the id and timestamps when it persists the record.
type NotificationEvent struct {
	UserID      string
	Title       string
	Message     string
	Type        NotificationType
	Priority    NotificationPriority
	RelatedID   string
	RelatedType string
}
