package models

import (
	"errors"
)

var (
	// ErrConfiguration covers missing required environment values or
	// an unusable tag catalog file.
	ErrConfiguration = errors.New("configuration error")

	// ErrUpstream covers network, authentication and non-success
	// responses from the chat completion or GitHub APIs.
	ErrUpstream = errors.New("upstream error")

	// ErrMalformedResponse covers model output that is not a JSON
	// array of strings.
	ErrMalformedResponse = errors.New("malformed model response")
)
