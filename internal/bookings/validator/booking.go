package validator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "bokning/pkg/errors"
	"bokning/pkg/interval"
	"bokning/pkg/model"
)

// BookingValidator checks booking payloads before they reach the store.
// allowPast is an operator policy: when false, intervals that start before
// the current time are rejected.
type BookingValidator struct {
	validate  *validator.Validate
	allowPast bool
}

func NewBookingValidator(allowPast bool) *BookingValidator {
	return &BookingValidator{
		validate:  validator.New(),
		allowPast: allowPast,
	}
}

func (v *BookingValidator) ValidateCreate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		return apperrors.Validation("Booking validation failed", fieldErrors(err))
	}

	return v.ValidateInterval(booking.StartTime, booking.EndTime)
}

func (v *BookingValidator) ValidateUpdate(update *model.BookingUpdate) error {
	if update.StartTime == nil && update.EndTime == nil {
		return apperrors.InvalidInput("At least one of start_time or end_time must be provided")
	}

	if err := v.validate.Struct(update); err != nil {
		return apperrors.Validation("Booking update validation failed", fieldErrors(err))
	}

	return nil
}

// ValidateInterval enforces the half-open interval rules on a final
// (post-merge) time range.
func (v *BookingValidator) ValidateInterval(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return apperrors.Validation("Booking requires both start_time and end_time", nil)
	}

	if !interval.IsValid(start, end) {
		return apperrors.Validation("end_time must be strictly after start_time", map[string]any{
			"start_time": start,
			"end_time":   end,
		})
	}

	if !v.allowPast && start.Before(time.Now()) {
		return apperrors.Validation("start_time must not be in the past", map[string]any{
			"start_time": start,
		})
	}

	return nil
}

func fieldErrors(err error) map[string]any {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]any{"error": err.Error()}
	}

	details := make(map[string]any, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fmt.Sprintf("failed on the '%s' rule", fieldErr.Tag())
	}
	return details
}
