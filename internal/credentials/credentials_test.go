package credentials

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("hunter2-but-longer")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if !Verify("hunter2-but-longer", hash) {
		t.Error("Verify() = false for the original password; want true")
	}
	if Verify("hunter2-but-wrong", hash) {
		t.Error("Verify() = true for a different password; want false")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical; want fresh salt per call")
	}
}

func TestVerifyMalformedStoredForm(t *testing.T) {
	for _, stored := range []string{"", "not-a-hash", "$argon2id$garbage"} {
		if Verify("anything", stored) {
			t.Errorf("Verify(_, %q) = true; want false", stored)
		}
	}
}
