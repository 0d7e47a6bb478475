package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Sup3rSecret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}
	if !Verify("Sup3rSecret", hash) {
		t.Error("correct password rejected")
	}
	if Verify("wrongPassword1", hash) {
		t.Error("wrong password accepted")
	}
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("samePassword1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := Hash("samePassword1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, salt missing")
	}
	if !Verify("samePassword1", h1) || !Verify("samePassword1", h2) {
		t.Error("both salted hashes should verify")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	for _, h := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536",
		"$argon2i$v=19$m=65536,t=3,p=1$c2FsdA$aGFzaA",
	} {
		if Verify("whatever", h) {
			t.Errorf("malformed hash %q accepted", h)
		}
	}
}
