package service

import (
	apperrors "github.com/justjoin/justjoin-backend/pkg/util"
)

// User-facing errors. Messages for flows the frontend surfaces directly
// are localized; the rest stay in English for admin tooling.
var (
	ErrEmailTaken          = apperrors.NewAlreadyExists("このメールアドレスはすでに使われています")
	ErrInvalidCredentials  = apperrors.NewUnauthorized("メールアドレスまたはパスワードが正しくありません")
	ErrUserNotFound        = apperrors.NewNotFound("user")
	ErrProfileNotFound     = apperrors.NewNotFound("profile")
	ErrNotPendingCompany   = apperrors.NewValidationError("company is not awaiting review", nil)
	ErrNotAdminAccount     = apperrors.NewValidationError("account is not an admin", nil)
	ErrSuperAdminEmail     = apperrors.NewForbidden("only the configured admin email may bootstrap an admin account")
	ErrSuperAdminDelete    = apperrors.NewForbidden("the configured admin account cannot be deleted")
	ErrNotificationMissing = apperrors.NewNotFound("notification")
	ErrSpotHistoryMissing  = apperrors.NewNotFound("spot notification history")
	ErrWorkflowMissing     = apperrors.NewNotFound("workflow rule")
)
