package services

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("Sup3r$ecret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == "Sup3r$ecret" {
		t.Fatal("hash equals plaintext")
	}

	ok, err := VerifyPassword(hashed, "Sup3r$ecret")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = VerifyPassword(hashed, "wrongpass1!")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	a, _ := HashPassword("Sup3r$ecret")
	b, _ := HashPassword("Sup3r$ecret")
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}

func TestVerifyPasswordMalformedStored(t *testing.T) {
	if _, err := VerifyPassword("not-a-valid-pair", "anything"); err == nil {
		t.Error("expected error for malformed stored hash")
	}
}
