package usecase

import (
	"credit_backend/internal/feature/dispute/domain/entity"
	"credit_backend/internal/shared/apperror"
	"credit_backend/internal/shared/identity"
)

// canAccessDispute reports whether caller may read or act on d.
func canAccessDispute(caller identity.Caller, d *entity.Dispute) bool {
	return caller.IsAdmin() || d.UserID == caller.ID
}

func requireAdmin(caller identity.Caller) error {
	if !caller.IsAdmin() {
		return apperror.Forbidden("only admins can update dispute status")
	}
	return nil
}

// canDelete allows admins to delete anything and owners only pending disputes.
func canDelete(caller identity.Caller, d *entity.Dispute) error {
	if caller.IsAdmin() {
		return nil
	}
	if d.UserID != caller.ID {
		return apperror.Forbidden("you can only delete your own disputes")
	}
	if d.Status != entity.StatusPending {
		return apperror.Forbidden("you can only delete pending disputes")
	}
	return nil
}
