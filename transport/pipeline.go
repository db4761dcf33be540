package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusfound/campusfound-go/apierror"
	"github.com/campusfound/campusfound-go/signal"
)

// EnvelopeSuccessCode is the only envelope code recognized as success.
const EnvelopeSuccessCode = 200

// maxBodyBytes bounds how much of a response body the pipeline will read.
const maxBodyBytes = 4 << 20

// ErrMissingEnvelope is returned by SendEnvelope when the response payload
// does not carry the {code, message, data} wrapper.
var ErrMissingEnvelope = errors.New("response carries no envelope")

// TokenSource supplies the bearer credential attached to outbound requests.
// An empty return means no credential is attached.
type TokenSource func() string

// Recorder receives pipeline counter events. Implementations must be safe for
// concurrent use; a nil Recorder disables recording.
type Recorder interface {
	RequestSent()
	RequestFailed(t apierror.Type)
	RetryAttempted()
	SessionInvalidated()
}

// Envelope is the {code, message, data} response wrapper of the backend
// contract. Login responses additionally carry the issued token next to the
// wrapper.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token,omitempty"`
}

// SendOptions adjusts a single call. The zero value is the normal behavior:
// no extra query or headers, and failures notify the user.
type SendOptions struct {
	// Query is appended to the request URL.
	Query url.Values
	// Header entries are added to the outbound request.
	Header http.Header
	// SuppressNotify skips the user notification for a failed call. The
	// failure is still classified and logged.
	SuppressNotify bool
}

// Params wires a Pipeline. BaseURL is required; everything else has a
// library-safe default.
type Params struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	Hub        *signal.Hub
	Logger     zerolog.Logger
	Ring       *apierror.Log
	Notifier   Notifier
	Recorder   Recorder
	UserAgent  string
}

// Pipeline normalizes every outbound and inbound call of the SDK. Construct
// with [New]; a Pipeline is safe for concurrent use.
type Pipeline struct {
	base      *url.URL
	http      *http.Client
	tokens    TokenSource
	hub       *signal.Hub
	log       zerolog.Logger
	ring      *apierror.Log
	notifier  Notifier
	recorder  Recorder
	userAgent string
}

// New validates params and returns a ready Pipeline.
func New(params Params) (*Pipeline, error) {
	if params.BaseURL == "" {
		return nil, errors.New("transport: base URL is required")
	}
	base, err := url.Parse(params.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("transport: parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("transport: base URL %q must be absolute", params.BaseURL)
	}

	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	ring := params.Ring
	if ring == nil {
		ring = apierror.NewLog(0)
	}
	notifier := params.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &Pipeline{
		base:      base,
		http:      httpClient,
		tokens:    params.Tokens,
		hub:       params.Hub,
		log:       params.Logger,
		ring:      ring,
		notifier:  notifier,
		recorder:  params.Recorder,
		userAgent: params.UserAgent,
	}, nil
}

// Ring exposes the in-memory error log the pipeline appends to.
func (p *Pipeline) Ring() *apierror.Log {
	return p.ring
}

// Send performs one call. On a 2xx response carrying the envelope it returns
// the envelope's data when code is 200 and a business-error record otherwise;
// a 2xx response without the envelope is returned unchanged (compatibility
// path). Transport failures and HTTP error statuses come back classified, and
// an HTTP 401 additionally publishes signal.AuthLogout before Send returns.
func (p *Pipeline) Send(ctx context.Context, method, path string, body any, opts SendOptions) (json.RawMessage, error) {
	env, raw, err := p.roundTrip(ctx, method, path, body, opts)
	if err != nil {
		return nil, err
	}
	if env != nil {
		return env.Data, nil
	}
	return raw, nil
}

// SendEnvelope performs one call and returns the full envelope, including the
// top-level token field of login responses. A 2xx response without the
// envelope fails with [ErrMissingEnvelope].
func (p *Pipeline) SendEnvelope(ctx context.Context, method, path string, body any, opts SendOptions) (*Envelope, error) {
	env, _, err := p.roundTrip(ctx, method, path, body, opts)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, ErrMissingEnvelope
	}
	return env, nil
}

// SendWithRetry wraps Send with the retry executor under policy.
func (p *Pipeline) SendWithRetry(ctx context.Context, method, path string, body any, opts SendOptions, policy Policy) (json.RawMessage, error) {
	attempt := 0
	return DoWithRetry(ctx, policy, func(ctx context.Context) (json.RawMessage, error) {
		attempt++
		if attempt > 1 && p.recorder != nil {
			p.recorder.RetryAttempted()
		}
		return p.Send(ctx, method, path, body, opts)
	})
}

// Get is shorthand for Send with the GET method and a query string.
func (p *Pipeline) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return p.Send(ctx, http.MethodGet, path, nil, SendOptions{Query: query})
}

// Post is shorthand for Send with the POST method and a JSON body.
func (p *Pipeline) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return p.Send(ctx, http.MethodPost, path, body, SendOptions{})
}

// Put is shorthand for Send with the PUT method and a JSON body.
func (p *Pipeline) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return p.Send(ctx, http.MethodPut, path, body, SendOptions{})
}

// Delete is shorthand for Send with the DELETE method.
func (p *Pipeline) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return p.Send(ctx, http.MethodDelete, path, nil, SendOptions{})
}

func (p *Pipeline) roundTrip(ctx context.Context, method, path string, body any, opts SendOptions) (*Envelope, json.RawMessage, error) {
	target, err := p.resolve(path, opts.Query)
	if err != nil {
		return nil, nil, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("transport: encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("transport: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if p.tokens != nil {
		if token := p.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	if p.recorder != nil {
		p.recorder.RequestSent()
	}

	resp, err := p.http.Do(req)
	if err != nil {
		rec := apierror.Classify(err, 0, nil)
		p.fail(method, path, rec, opts)
		return nil, nil, rec
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		rec := apierror.Classify(err, 0, nil)
		p.fail(method, path, rec, opts)
		return nil, nil, rec
	}

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized {
			p.invalidate(method, path)
		}
		rec := apierror.Classify(nil, resp.StatusCode, data)
		p.fail(method, path, rec, opts)
		return nil, nil, rec
	}

	env, ok := decodeEnvelope(data)
	if !ok {
		return nil, json.RawMessage(data), nil
	}
	if env.Code != EnvelopeSuccessCode {
		rec := apierror.NewBusiness(env.Code, env.Message, env.Data)
		p.fail(method, path, rec, opts)
		return nil, nil, rec
	}
	return env, nil, nil
}

func (p *Pipeline) resolve(path string, query url.Values) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("transport: parse path %q: %w", path, err)
	}
	u := p.base.ResolveReference(ref)
	if len(query) > 0 {
		merged := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				merged.Add(k, v)
			}
		}
		u.RawQuery = merged.Encode()
	}
	return u.String(), nil
}

// invalidate broadcasts the forced session termination. Listeners run
// synchronously, so the session is already cleared when the triggering call's
// failure reaches its caller.
func (p *Pipeline) invalidate(method, path string) {
	p.log.Warn().Str("method", method).Str("path", path).Msg("credential rejected, terminating session")
	if p.recorder != nil {
		p.recorder.SessionInvalidated()
	}
	if p.hub != nil {
		p.hub.Publish(signal.AuthLogout)
	}
}

func (p *Pipeline) fail(method, path string, rec *apierror.Record, opts SendOptions) {
	p.ring.Append(rec)
	p.log.Error().
		Str("method", method).
		Str("path", path).
		Str("error_type", rec.Type.String()).
		Str("severity", rec.Severity.String()).
		Int("code", rec.Code).
		Msg(rec.Message)
	if p.recorder != nil {
		p.recorder.RequestFailed(rec.Type)
	}

	if opts.SuppressNotify {
		return
	}
	if rec.Severity == apierror.SeverityCritical {
		p.notifier.Alert(rec)
		return
	}
	p.notifier.Toast(rec)
}

func decodeEnvelope(data []byte) (*Envelope, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var probe struct {
		Code    *int            `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
		Token   string          `json:"token"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil || probe.Code == nil {
		return nil, false
	}
	return &Envelope{
		Code:    *probe.Code,
		Message: probe.Message,
		Data:    probe.Data,
		Token:   probe.Token,
	}, true
}
