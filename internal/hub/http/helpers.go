package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/projecthub/projecthub/internal/hub/domain"
	"github.com/projecthub/projecthub/internal/hub/service"
	"github.com/projecthub/projecthub/pkg/httpx"
	"github.com/projecthub/projecthub/pkg/hubsdk"
)

// actorFromCtx rebuilds the acting identity from the verified session claims
// the authn middleware stored on the context.
func actorFromCtx(ctx context.Context) service.Actor {
	return service.Actor{
		ID:   httpx.UserIDFromCtx(ctx),
		Role: httpx.RoleFromCtx(ctx),
	}
}

// writeInvitationError maps invitation service errors onto the wire
// contract. Unknown errors are logged and collapsed to server_error.
func writeInvitationError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInvitationRequest):
		hubsdk.NewAPIError(http.StatusBadRequest, hubsdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
	case errors.Is(err, service.ErrProjectNotFound):
		hubsdk.NewAPIError(http.StatusBadRequest, hubsdk.ErrorCodeInvalidRequest, "project not found").WriteError(w)
	case errors.Is(err, service.ErrDuplicateActiveInvitation):
		hubsdk.ErrDuplicateInvitation.WriteError(w)
	case errors.Is(err, service.ErrUserAlreadyExists):
		hubsdk.ErrUserExists.WriteError(w)
	case errors.Is(err, service.ErrInvitationNotFound):
		hubsdk.ErrInvitationNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidInvitationTransition):
		hubsdk.ErrInvalidTransition.WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		hubsdk.ErrForbidden.WriteError(w)
	default:
		log.Error("invitation operation failed", "err", err)
		hubsdk.ErrServerError.WriteError(w)
	}
}

func toInvitationRecord(inv domain.Invitation) hubsdk.InvitationRecord {
	return hubsdk.InvitationRecord{
		ID:         inv.ID,
		Email:      inv.Email,
		Role:       inv.Role,
		Department: inv.Department,
		Message:    inv.Message,
		InvitedBy:  inv.InvitedBy,
		ProjectID:  inv.ProjectID,
		Status:     string(inv.Status),
		ExpiresAt:  inv.ExpiresAt,
		AcceptedAt: inv.AcceptedAt,
		AcceptedBy: inv.AcceptedBy,
		CreatedAt:  inv.CreatedAt,
	}
}

func toUserProfile(u domain.User) hubsdk.UserProfile {
	return hubsdk.UserProfile{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
		CreatedAt:  u.CreatedAt,
	}
}

func toNotificationRecord(n domain.Notification) hubsdk.NotificationRecord {
	return hubsdk.NotificationRecord{
		ID:          n.ID,
		Title:       n.Title,
		Message:     n.Message,
		Type:        string(n.Type),
		Priority:    string(n.Priority),
		RelatedID:   n.RelatedID,
		RelatedType: n.RelatedType,
		IsRead:      n.IsRead,
		ReadAt:      n.ReadAt,
		CreatedAt:   n.CreatedAt,
	}
}
