// Package diag defines the diagnostic model shared by the tokenizer phases.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form, a short Message and the Primary source.Span. Producers
// emit through a Reporter so they do not depend on storage; BagReporter
// collects into a Bag which supports sorting, deduplication and limits.
//
// Package diag does no formatting or IO. Rendering lives in internal/diagfmt.
package diag
