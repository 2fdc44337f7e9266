package validator

import (
	"testing"
	"time"

	apperrors "bokning/pkg/errors"
	"bokning/pkg/model"
)

const testRoomID = "507f1f77bcf86cd799439011"

func futureBooking() *model.Booking {
	start := time.Now().Add(time.Hour)
	return &model.Booking{
		UserID:    "user-1",
		RoomID:    testRoomID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}
}

func TestValidateCreate_Valid(t *testing.T) {
	v := NewBookingValidator(false)

	if err := v.ValidateCreate(futureBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCreate_MissingRoom(t *testing.T) {
	v := NewBookingValidator(false)

	booking := futureBooking()
	booking.RoomID = ""

	err := v.ValidateCreate(booking)
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
	if _, ok := appErr.Details["RoomID"]; !ok {
		t.Errorf("expected RoomID in details, got %v", appErr.Details)
	}
}

func TestValidateCreate_MalformedRoomID(t *testing.T) {
	v := NewBookingValidator(false)

	booking := futureBooking()
	booking.RoomID = "not-an-object-id"

	if err := v.ValidateCreate(booking); err == nil {
		t.Fatal("expected validation error for malformed room id")
	}
}

func TestValidateCreate_EndBeforeStart(t *testing.T) {
	v := NewBookingValidator(false)

	booking := futureBooking()
	booking.EndTime = booking.StartTime.Add(-time.Minute)

	if err := v.ValidateCreate(booking); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateCreate_PastPolicy(t *testing.T) {
	booking := futureBooking()
	booking.StartTime = time.Now().Add(-2 * time.Hour)
	booking.EndTime = booking.StartTime.Add(time.Hour)

	if err := NewBookingValidator(false).ValidateCreate(booking); err == nil {
		t.Error("expected past interval to be rejected by default")
	}
	if err := NewBookingValidator(true).ValidateCreate(booking); err != nil {
		t.Errorf("expected past interval to pass when allowed: %v", err)
	}
}

func TestValidateUpdate_Empty(t *testing.T) {
	v := NewBookingValidator(false)

	err := v.ValidateUpdate(&model.BookingUpdate{})
	if err == nil {
		t.Fatal("expected error for empty update")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
}

func TestValidateUpdate_SingleField(t *testing.T) {
	v := NewBookingValidator(false)

	end := time.Now().Add(3 * time.Hour)
	if err := v.ValidateUpdate(&model.BookingUpdate{EndTime: &end}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateInterval_ZeroTimes(t *testing.T) {
	v := NewBookingValidator(true)

	if err := v.ValidateInterval(time.Time{}, time.Now()); err == nil {
		t.Error("expected error for zero start time")
	}
	if err := v.ValidateInterval(time.Now(), time.Time{}); err == nil {
		t.Error("expected error for zero end time")
	}
}
