// Package api defines the shared response envelopes of the HTTP API.
package api

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body for requests that succeed without data.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries the signed JWT returned on a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}
