// Package gemini provides an implementation of the content.Bank interface
// that uses Google's Gemini API to generate IELTS practice questions.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's content sourcing to Google's external Gemini
// AI service. It translates between the application's question model and the
// Gemini API without exposing the details of the external service to the
// core application.
//
// Key components:
//
// 1. GeminiBank:
//   - Implements the content.Bank interface
//   - Handles communication with the Gemini API
//   - Processes structured JSON responses into question values
//
// 2. Prompt Management:
//   - Builds prompts from the requested skill, difficulty, and count
//   - Constrains responses to the application's question schema
//
// 3. Error Handling:
//   - Implements retry logic with exponential backoff for transient errors
//   - Categorizes and translates API errors to application-specific errors
//   - Handles content filtering and safety measures
//
// The package depends on Google's genai client library for communicating
// with the Gemini API, and handles authentication, request formatting, and
// response processing according to Google's API specifications.
package gemini
