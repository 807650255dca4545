// Package generation provides interfaces and error types for the
// content-generation collaborator: the external AI/LLM service that
// produces learning concepts, daily recommendations, and engagement
// alerts. It abstracts the details of LLM API integration (Gemini),
// allowing the progression core to depend only on the boundary
// signatures rather than on how they are fulfilled.
package generation
