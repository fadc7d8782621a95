// Package rules holds the registration form rule table: an ordered list of
// field specs pairing each field identifier with a predicate over the field's
// current string value and the message shown when the predicate fails.
//
// Predicates are pure over the supplied value, except the confirmPassword
// rule which reads the password field through the Lookup it receives so the
// comparison always uses the live value. Constraints are declarative hints
// (minLength, pattern, min, format) mirroring a predicate where it can be
// expressed that way; contract and markup generators consume them, the
// predicate stays authoritative.
package rules
