package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusByKind(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("missing"), http.StatusNotFound},
		{Validation("bad"), http.StatusUnprocessableEntity},
		{BadRequest("malformed"), http.StatusBadRequest},
		{Unauthorized("nope"), http.StatusUnauthorized},
		{Unavailable("down"), http.StatusServiceUnavailable},
		{Internal("boom"), http.StatusInternalServerError},
		{New(KindUnknown, "?"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("%s: expected status %d, got %d", tc.err.Kind, tc.want, got)
		}
	}
}

func TestGetKindFindsWrappedError(t *testing.T) {
	inner := Validation("message is required").WithOp("scoring.Score")
	wrapped := fmt.Errorf("evaluate: %w", inner)

	if !Is(wrapped, KindValidation) {
		t.Fatalf("expected wrapped error to carry validation kind, got %s", GetKind(wrapped))
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatalf("expected plain error to be unknown kind")
	}
}

func TestErrorMessageIncludesOpAndCause(t *testing.T) {
	err := Wrap(KindInternal, "insert delivery", errors.New("conn reset")).WithOp("deliverylog.Record")

	want := "deliverylog.Record: insert delivery: conn reset"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestInvalidFieldsCarriesDetails(t *testing.T) {
	err := InvalidFields("invalid inquiry", FieldError{Field: "message", Reason: "required"})

	fields, ok := err.Details.([]FieldError)
	if !ok || len(fields) != 1 || fields[0].Field != "message" {
		t.Fatalf("expected one field error for message, got %#v", err.Details)
	}
}
