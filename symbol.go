package registrykit

// MaxSymbolLength is the longest symbol accepted as an attribute key, config key or action tag.
const MaxSymbolLength = 32

// Symbol is a short identifier used for attribute keys, configuration keys
// and transaction action tags.
//
// A valid symbol has 1 to 32 characters drawn from [A-Za-z0-9_].
type Symbol string

// Validate checks that the symbol is well formed.
func (s Symbol) Validate() error {
	if s == "" {
		return NewError(ErrInvalidSymbol, "symbol cannot be empty")
	}
	if len(s) > MaxSymbolLength {
		return NewError(ErrInvalidSymbol, "symbol exceeds 32 characters").WithKey(s)
	}
	for _, c := range s {
		if !isValidSymbolChar(c) {
			return NewError(ErrInvalidSymbol, "symbol contains invalid character").WithKey(s)
		}
	}
	return nil
}

// String returns the symbol text.
func (s Symbol) String() string {
	return string(s)
}

func isValidSymbolChar(c rune) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_'
}

// Address identifies an externally authenticated principal.
// It is opaque to the registry and only ever compared for equality.
type Address string

// Validate checks that the address is usable as an operation argument.
func (a Address) Validate() error {
	if a == "" {
		return NewError(ErrInvalidInput, "address cannot be empty")
	}
	return nil
}

// String returns the address text.
func (a Address) String() string {
	return string(a)
}
