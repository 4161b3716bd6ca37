package domain

// Effect describes a side effect a lifecycle transition wants performed
// after its state change has committed. The state machine stays pure: it
// returns effects, and a runner executes them with its own failure
// isolation. Effect failures are logged, never rolled back or surfaced as
// the primary operation's failure.
type Effect interface {
	isEffect()
}

// EmailInvitation asks for the invitation email (HTML + text) to be sent to
// the invitee. Token is the raw capability token; it exists only here and in
// the creation response.
type EmailInvitation struct {
	Invitation  Invitation
	Token       string
	InviterName string
}

func (EmailInvitation) isEffect() {}

// Notify asks for an in-app notification to be persisted and pushed to the
// recipient's live channel.
type Notify struct {
	Event NotificationEvent
}

func (Notify) isEffect() {}
