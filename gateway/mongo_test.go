package gateway

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestMapErr(t *testing.T) {
	if mapErr(nil) != nil {
		t.Fatal("mapErr(nil) must be nil")
	}

	if err := mapErr(mongo.ErrNoDocuments); !errors.Is(err, ErrNotFound) {
		t.Fatalf("no documents mapped to %v, want ErrNotFound", err)
	}

	unauthorized := mongo.CommandError{Code: 13, Message: "not authorized"}
	if err := mapErr(unauthorized); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("code 13 mapped to %v, want ErrPermissionDenied", err)
	}

	authFailed := mongo.CommandError{Code: 18, Message: "authentication failed"}
	if err := mapErr(authFailed); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("code 18 mapped to %v, want ErrPermissionDenied", err)
	}

	if err := mapErr(errors.New("connection reset")); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("transport error mapped to %v, want ErrUnavailable", err)
	}
}
