package ports

// PackOptions mirrors the knobs of a classic JavaScript packer
type PackOptions struct {
	// Encoding selects the packer's keyword encoding level (0 = none)
	Encoding int

	// Base62 enables base62 encoding of identifiers
	Base62 bool

	// ShrinkVars renames local variables to short names
	ShrinkVars bool
}

// Packer defines the port for JavaScript minification.
// Implementations are treated as pure functions of their input.
type Packer interface {
	// Pack returns the minified form of src
	Pack(src []byte, opts PackOptions) ([]byte, error)
}
