package handlers

import (
	"context"
	"errors"
	"sort"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/conference-api/internal/apperr"
	"github.com/gdg-garage/conference-api/internal/logging"
)

// httpError maps a domain error onto its huma status error.
func httpError(ctx context.Context, err error) error {
	var (
		authErr     *apperr.AuthenticationError
		validErr    *apperr.ValidationError
		conflictErr *apperr.ConflictError
	)

	switch {
	case err == nil:
		return nil
	case errors.As(err, &authErr):
		return huma.Error401Unauthorized(authErr.Error())
	case errors.As(err, &validErr):
		return huma.Error400BadRequest(validErr.Error(), fieldDetails(validErr)...)
	case errors.As(err, &conflictErr):
		details := make([]error, 0, len(conflictErr.Conflicts))
		for _, c := range conflictErr.Conflicts {
			details = append(details, &huma.ErrorDetail{
				Message:  "overlaps " + c.Name,
				Location: c.Key,
				Value:    map[string]string{"startDate": c.StartDate, "endDate": c.EndDate},
			})
		}
		return huma.Error409Conflict(conflictErr.Error(), details...)
	case errors.Is(err, apperr.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	default:
		logging.FromContext(ctx).ErrorContext(ctx, "request failed", "error", err)
		return huma.Error500InternalServerError("Internal server error")
	}
}

func fieldDetails(v *apperr.ValidationError) []error {
	fields := make([]string, 0, len(v.FieldErrors))
	for f := range v.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	details := make([]error, 0, len(fields))
	for _, f := range fields {
		details = append(details, &huma.ErrorDetail{Message: v.FieldErrors[f], Location: "body." + f})
	}
	return details
}
