package gh

import (
	"encoding/json"
	"fmt"
)

// TransportError indicates the HTTP layer did not return a success status,
// or the request could not be sent at all. It carries the offending query
// document and the raw response body for diagnostics.
type TransportError struct {
	Document   string
	StatusCode int    // 0 when the request never completed
	Body       []byte // raw response body, nil when the request never completed
	Err        error  // underlying error for failed requests
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("graphql request failed: %v", e.Err)
	}
	return fmt.Sprintf("graphql request returned status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteQueryError indicates the API returned an application-level error
// list, or a success payload missing the expected result fields. It carries
// the offending query document and the raw errors payload for diagnostics.
type RemoteQueryError struct {
	Document string
	Errors   json.RawMessage // raw `errors` array, nil for shape problems
	Reason   string          // set for malformed-payload cases
}

func (e *RemoteQueryError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("graphql query failed: %s", e.Errors)
	}
	return fmt.Sprintf("graphql response malformed: %s", e.Reason)
}
