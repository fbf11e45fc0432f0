package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("loading post: %w", NotFound("Post not found"))
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", KindOf(err))
	}
	if !Is(err, KindNotFound) {
		t.Fatalf("expected Is to match")
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatalf("plain errors must be internal")
	}
	if Is(nil, KindInternal) {
		t.Fatalf("nil is not an error of any kind")
	}
}

func TestStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindUnauthenticated: http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := kind.Status(); got != want {
			t.Errorf("%s: expected %d, got %d", kind, want, got)
		}
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:5432: connection refused")
	err := Internal(cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}
	if msg := PublicMessage(err); msg == cause.Error() {
		t.Fatalf("internal cause leaked: %q", msg)
	}
	if msg := PublicMessage(Conflict("Email in use")); msg != "Email in use" {
		t.Fatalf("unexpected public message %q", msg)
	}
}
