package hash

// Hash turns a plaintext credential into its stored form and checks probes
// against stored values.
type Hash interface {
	// Hash returns the stored form of plaintext.
	Hash(plaintext string) ([]byte, error)

	// Verify reports whether plaintext produces hashed.
	Verify(hashed, plaintext string) bool
}
