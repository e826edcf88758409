package analysis

import "errors"

var (
	// ErrEmptyQuery is returned before any fetch when the query is blank
	ErrEmptyQuery = errors.New("Please enter a keyword or hashtag to analyze.")

	// ErrTransport covers network failures and non-success responses
	ErrTransport = errors.New("sentiment API request failed")

	// ErrPayload is returned when the response body cannot be decoded
	ErrPayload = errors.New("malformed sentiment API response")

	// ErrSuperseded is returned for a response whose request is no longer the latest
	ErrSuperseded = errors.New("response superseded by a newer request")

	// ErrSessionNotFound is returned for unknown session ids
	ErrSessionNotFound = errors.New("session not found")
)
