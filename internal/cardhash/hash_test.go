package cardhash

import "testing"

func TestNormalize(t *testing.T) {
	// Only case, surrounding space and line endings normalize; punctuation stays.
	expected := "el perro grande\nthe big dog."
	normalized := Normalize("  El Perro Grande \r\n", "The big dog.")
	if normalized != expected {
		t.Errorf("Expected normalized string to be '%s', but got '%s'", expected, normalized)
	}
}

func TestHash(t *testing.T) {
	t.Run("generates correct hash", func(t *testing.T) {
		// Hash for "perro\ndog"
		expectedHash := "bdf052ae9cc04653c73ffcfad5add12969a28ce12e68fb860e7ae5836c10519a"
		hash := Hash("perro", "dog")

		if hash != expectedHash {
			t.Errorf("Expected hash '%s', but got '%s'", expectedHash, hash)
		}
	})

	t.Run("hash is deterministic", func(t *testing.T) {
		if Hash("perro", "dog") != Hash("perro", "dog") {
			t.Error("Expected hashes for identical cards to be the same")
		}
	})

	t.Run("normalization produces same hash", func(t *testing.T) {
		if Hash("  Perro ", "Dog") != Hash("perro", "dog") {
			t.Error("Expected hashes to be the same after normalization, but they were different.")
		}
	})

	t.Run("fields do not run together", func(t *testing.T) {
		if Hash("perrod", "og") == Hash("perro", "dog") {
			t.Error("Expected different field splits to produce different hashes")
		}
	})
}
