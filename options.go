package kestreljson

// Options controls the small set of grammar relaxations the parser
// recognizes.
type Options struct {
	// Lenient enables unquoted string literals, trailing commas in
	// arrays and objects, and (once implemented) comments. Off by
	// default, matching strict RFC 7159 behavior.
	Lenient bool
}
