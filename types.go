package nicklife

import (
	"net/http"
)

// HTTPClient is the outbound HTTP surface shared by the Fitbit and
// completion clients. Satisfied by *http.Client and by test fakes.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
