// Package fuzztests houses Go fuzz harnesses for the tokenizer: the parser
// under each option set, and the driver from raw bytes through the FileSet.
// Every input must parse without panics or hangs, keep the structural
// invariants of testkit.CheckResult and reconstruct to itself.
package fuzztests
