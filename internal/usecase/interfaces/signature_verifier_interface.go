package interfaces

// ISignatureVerifier authenticates a raw webhook body against the processor's
// signature and timestamp headers. Verification happens before any parsing.
type ISignatureVerifier interface {
	Verify(rawBody []byte, timestamp, signature string) bool
}
