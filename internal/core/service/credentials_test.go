package service

import "testing"

func TestCredentialStore_HashProducesDistinctStrings(t *testing.T) {
	store := NewCredentialStore()

	h1, err := store.Hash("s3cret-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	h2, err := store.Hash("s3cret-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("two hashes of the same input must differ (fresh salt)")
	}
	if h1 == "s3cret-password" || h2 == "s3cret-password" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !store.Verify("s3cret-password", h1) {
		t.Fatalf("first hash did not verify")
	}
	if !store.Verify("s3cret-password", h2) {
		t.Fatalf("second hash did not verify")
	}
}

func TestCredentialStore_VerifyRejectsWrongPassword(t *testing.T) {
	store := NewCredentialStore()

	hash, err := store.Hash("correct-horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if store.Verify("battery-staple", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestCredentialStore_VerifyMalformedHash(t *testing.T) {
	store := NewCredentialStore()

	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$garbage"} {
		if store.Verify("anything", hash) {
			t.Fatalf("malformed hash %q verified", hash)
		}
	}
}
