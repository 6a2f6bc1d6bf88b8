package labs

import (
	"errors"
	"testing"
)

// Mirrors the documented scenario: owner a@x.com starts l1 and gets a token;
// b@x.com stays unverified until an invite is created and accepted.
func TestVerify(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "a@x.com")
	guest := createUser(t, db, "b@x.com")

	lab, err := StartLab(db, owner, "frankhertz1", "Frank-Hertz 1", 2, nil)
	if err != nil {
		t.Fatalf("StartLab() error = %v, want nil", err)
	}
	token := lab.VerificationToken

	check := func(email, labID, tok string, want bool) {
		t.Helper()
		got, err := Verify(db, email, labID, tok)
		if err != nil {
			t.Fatalf("Verify(%s, %s, %s) error = %v", email, labID, tok, err)
		}
		if got != want {
			t.Errorf("Verify(%s, %s, %s) = %v, want %v", email, labID, tok, got, want)
		}
	}

	check(owner.Email, "frankhertz1", token, true)
	check(owner.Email, "frankhertz1", "wrongtoken00", false)
	check(owner.Email, "frankhertz2", token, false)
	check(guest.Email, "frankhertz1", token, false)
	check("nobody@x.com", "frankhertz1", token, false)

	// a pending invite does not verify
	if _, err := Invite(db, owner, "frankhertz1", guest.Email, ""); err != nil {
		t.Fatalf("Invite() error = %v, want nil", err)
	}
	check(guest.Email, "frankhertz1", token, false)

	// acceptance flips it
	if err := Accept(db, guest, "frankhertz1"); err != nil {
		t.Fatalf("Accept() error = %v, want nil", err)
	}
	check(guest.Email, "frankhertz1", token, true)
	check(guest.Email, "frankhertz1", "wrongtoken00", false)
	check(guest.Email, "frankhertz2", token, false)
}

func TestAccessibleLab(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "a@x.com")
	guest := createUser(t, db, "b@x.com")

	started, err := StartLab(db, owner, "frankhertz1", "Frank-Hertz 1", 2, nil)
	if err != nil {
		t.Fatalf("StartLab() error = %v, want nil", err)
	}

	lab, err := AccessibleLab(db, owner, "frankhertz1")
	if err != nil {
		t.Fatalf("AccessibleLab(owner) error = %v, want nil", err)
	}
	if lab.VerificationToken != started.VerificationToken {
		t.Errorf("owner token = %q, want %q", lab.VerificationToken, started.VerificationToken)
	}

	if _, err := AccessibleLab(db, guest, "frankhertz1"); !errors.Is(err, ErrNoAccess) {
		t.Errorf("AccessibleLab(guest) error = %v, want ErrNoAccess", err)
	}
	if _, err := AccessibleLab(db, owner, "nosuchlab"); !errors.Is(err, ErrNoAccess) {
		t.Errorf("AccessibleLab(unknown lab) error = %v, want ErrNoAccess", err)
	}

	if _, err := Invite(db, owner, "frankhertz1", guest.Email, ""); err != nil {
		t.Fatalf("Invite() error = %v, want nil", err)
	}
	if err := Accept(db, guest, "frankhertz1"); err != nil {
		t.Fatalf("Accept() error = %v, want nil", err)
	}

	lab, err = AccessibleLab(db, guest, "frankhertz1")
	if err != nil {
		t.Fatalf("AccessibleLab(collaborator) error = %v, want nil", err)
	}
	if lab.VerificationToken != started.VerificationToken {
		t.Errorf("collaborator token = %q, want %q", lab.VerificationToken, started.VerificationToken)
	}
}
