// Package progression implements the user progression engine: the
// leveling policy, XP awards, mastery updates, streak evaluation,
// activity logging, and the analytics bucket accumulation they feed.
//
// All transition functions follow the immutable update pattern: they
// clone the incoming profile and return a new instance, leaving the
// original untouched. Persistence and atomicity are the caller's
// concern (see the service package, which wraps each logical event in
// a single store transaction).
package progression
