package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestGetKindFollowsWrappedChain(t *testing.T) {
	base := Conflict("duplicate territory code").WithOp("registry.ReplaceAll")
	wrapped := fmt.Errorf("admin replace: %w", base)

	if GetKind(wrapped) != KindConflict {
		t.Fatalf("expected KindConflict, got %v", GetKind(wrapped))
	}
	if !Is(wrapped, KindConflict) {
		t.Fatal("expected Is to match wrapped conflict")
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatal("expected KindUnknown for untyped error")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:     http.StatusNotFound,
		KindValidation:   http.StatusBadRequest,
		KindConflict:     http.StatusConflict,
		KindUnauthorized: http.StatusUnauthorized,
		KindUnavailable:  http.StatusServiceUnavailable,
		KindUnknown:      http.StatusBadRequest,
	}
	for kind, want := range cases {
		if got := New(kind, "x").HTTPStatus(); got != want {
			t.Fatalf("kind %v: expected %d, got %d", kind, want, got)
		}
	}
}

func TestErrorStringIncludesOpAndCause(t *testing.T) {
	err := Wrap(KindUnavailable, "snapshot store unavailable", errors.New("dial tcp")).WithOp("repository.Save")
	want := "repository.Save: snapshot store unavailable: dial tcp"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
