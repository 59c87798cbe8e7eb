// Package source builds [http.Message] snapshots from request and response
// objects.
//
// Four source shapes are recognized. Buffered sources hold their whole body
// and a case-insensitive header multi-map, as fetch-style objects do.
// Streaming sources expose a plain header mapping and a body that arrives
// in chunks: a [Stream] for incoming responses and a [Capture] for outgoing
// requests. Both streaming bodies are consumed destructively and can be
// extracted only once.
package source
