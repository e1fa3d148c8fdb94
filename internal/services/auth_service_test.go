package services

import (
	"testing"
	"time"
)

type authStubStore struct {
	usersByEmail map[string]*User
}

func newAuthStubStore() *authStubStore {
	return &authStubStore{usersByEmail: map[string]*User{}}
}

func (s *authStubStore) FindUserByEmail(email string) (*User, error) {
	return s.usersByEmail[email], nil
}

func (s *authStubStore) AddUser(u *User) error {
	s.usersByEmail[u.Email] = u
	return nil
}

func testSigner(uid, email string, ttl time.Duration) (string, error) {
	return "token-" + uid, nil
}

func TestAuthRegisterAndLogin(t *testing.T) {
	store := newAuthStubStore()
	svc := NewAuthService(store, testSigner)

	res, err := svc.Register("admin@example.com", "Secret123!")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.Token == "" || res.UserID == "" {
		t.Fatalf("register result: %+v", res)
	}
	u := store.usersByEmail["admin@example.com"]
	if u == nil || string(u.PassHash) == "Secret123!" {
		t.Fatalf("password must be stored hashed")
	}

	login, err := svc.Login("admin@example.com", "Secret123!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.UserID != res.UserID {
		t.Fatalf("login user mismatch")
	}
}

func TestAuthRejections(t *testing.T) {
	store := newAuthStubStore()
	svc := NewAuthService(store, testSigner)

	if _, err := svc.Register("", "pw"); err == nil {
		t.Fatalf("empty email should fail")
	}
	if _, err := svc.Register("a@b.c", ""); err == nil {
		t.Fatalf("empty password should fail")
	}

	if _, err := svc.Register("admin@example.com", "Secret123!"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register("admin@example.com", "other"); err == nil {
		t.Fatalf("duplicate email should conflict")
	} else if se, ok := AsServiceError(err); !ok || se.Code != ErrorConflict {
		t.Fatalf("want conflict, got %v", err)
	}

	if _, err := svc.Login("admin@example.com", "wrong"); err == nil {
		t.Fatalf("wrong password should fail")
	} else if se, ok := AsServiceError(err); !ok || se.Code != ErrorUnauthorized {
		t.Fatalf("want unauthorized, got %v", err)
	}
	if _, err := svc.Login("nobody@example.com", "pw"); err == nil {
		t.Fatalf("unknown user should fail")
	}
}
