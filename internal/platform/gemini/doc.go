// Package gemini provides an implementation of the generation.Generator
// interface that uses Google's Gemini API to synthesize learning
// concepts, topic lists, daily recommendations, and engagement alerts.
//
// This package is an infrastructure adapter in the hexagonal
// architecture, connecting the application's domain logic to Google's
// external Gemini AI service. It translates between the application's
// domain models and the Gemini API without exposing the details of the
// external service to the core application.
//
// Key components:
//
// 1. GeminiGenerator:
//   - Implements the generation.Generator interface
//   - Handles communication with the Gemini API
//   - Processes structured responses into domain models
//
// 2. Prompt Management:
//   - Pairs each operation with a dedicated system instruction
//   - Constrains responses with JSON response schemas
//
// 3. Error Handling:
//   - Implements retry logic with exponential backoff for transient errors
//   - Categorizes and translates API errors to application-specific errors
//   - Handles content filtering and safety measures
//
// The package depends on Google's genai client library for
// communicating with the Gemini API, and handles authentication,
// request formatting, and response processing according to Google's
// API specifications.
package gemini
