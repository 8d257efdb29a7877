package render

// Options carry per-request switches shared by every artifact generator.
type Options struct {
	// HTMLAttributes mirrors the "support HTML attributes" request flag. It is
	// accepted and forwarded but does not change the generated output.
	HTMLAttributes bool
}
