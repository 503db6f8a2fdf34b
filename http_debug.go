package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport dumps each HTTP request/response pair for troubleshooting
// API communication problems (timeouts, malformed requests, auth rejects).
//
// Enable with WithDebugLogging or by setting FARMLINK_DEBUG=true or
// DEBUG=true. Dumps include full bodies and the Authorization header, so
// keep it out of production logs.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested checks the debug env toggles. FARMLINK_DEBUG targets
// this SDK; DEBUG is the broader development convention. Both compare
// against the literal "true".
func debugLoggingRequested() bool {
	return os.Getenv("FARMLINK_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
