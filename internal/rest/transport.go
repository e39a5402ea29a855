package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("printa.rest")

// MIME types used by the upstream API.
const (
	JSON = "application/json"
)

// Doer performs the *http.Request. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// CredentialSource yields the bearer token for outgoing requests. An empty
// token means the request is sent without credentials.
type CredentialSource interface {
	Token() string
}

// CredentialFunc adapts a function to CredentialSource.
type CredentialFunc func() string

// Token implements CredentialSource.
func (f CredentialFunc) Token() string { return f() }

// Requester sends requests to the upstream API and turns non-2xx responses
// into *APIError values.
type Requester struct {
	baseURL string
	doer    Doer
	creds   CredentialSource
}

// NewRequester creates a Requester rooted at baseURL.
func NewRequester(baseURL string, doer Doer, creds CredentialSource) (*Requester, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Annotatef(err, "parsing base url %q", baseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.NotValidf("base url %q", baseURL)
	}
	if doer == nil {
		doer = http.DefaultClient
	}
	if creds == nil {
		creds = CredentialFunc(func() string { return "" })
	}
	return &Requester{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
		creds:   creds,
	}, nil
}

// Do performs method on path and returns the raw response body of a 2xx
// response. body may be nil, []byte holding JSON, *Multipart, or any value
// that marshals to JSON.
func (r *Requester) Do(ctx context.Context, method, path string, params url.Values, body any) ([]byte, error) {
	u := r.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	reader, contentType, err := encodeBody(body)
	if err != nil {
		return nil, errors.Trace(err)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, errors.Annotate(err, "can not make new request")
	}
	req.Header.Set("Accept", JSON)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := r.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if logger.IsTraceEnabled() {
		if data, err := httputil.DumpRequestOut(req, false); err == nil {
			logger.Tracef("%s request %s", method, data)
		}
	}

	resp, err := r.doer.Do(req)
	if err != nil {
		logger.Warningf("%s %s: %v", method, path, err)
		return nil, errors.Annotatef(err, "%s %s", method, path)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Annotatef(err, "reading %s %s response", method, path)
	}
	if logger.IsTraceEnabled() {
		logger.Tracef("%s %s response %d %s", method, path, resp.StatusCode, data)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return data, nil
	}
	logger.Debugf("%s %s responded %d", method, path, resp.StatusCode)
	return nil, decodeAPIError(resp.StatusCode, data)
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Multipart:
		return b.encode()
	case []byte:
		return bytes.NewReader(b), JSON, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", errors.Annotate(err, "encoding request body")
		}
		return bytes.NewReader(data), JSON, nil
	}
}
