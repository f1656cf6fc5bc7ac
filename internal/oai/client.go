// Package oai implements the subset of the OAI-PMH protocol the
// harvester needs: ListSets, ListIdentifiers and GetRecord, with
// resumption-token flow control.
package oai

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/b33n-tech/scrapper-persee/pkg/logger"
	"github.com/b33n-tech/scrapper-persee/pkg/metadata"
)

// OAIError wraps OAI error codes and messages (<error code="...">).
type OAIError struct {
	Code    string
	Message string
}

// Error to satisfy interface.
func (e OAIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// errNoRecordsMatch is the protocol's way of saying "empty result set".
const errNoRecordsMatch = "noRecordsMatch"

// Request holds the parameters of one OAI request. A resumption token
// is exclusive and suppresses the other list arguments.
type Request struct {
	Verb            string
	Set             string
	Prefix          string
	Identifier      string
	ResumptionToken string
}

// URL returns the query URL for this request against the given endpoint.
func (r Request) URL(endpoint string) string {
	values := url.Values{}
	values.Add("verb", r.Verb)

	if r.ResumptionToken != "" {
		values.Add("resumptionToken", r.ResumptionToken)
		return fmt.Sprintf("%s?%s", endpoint, values.Encode())
	}

	addIfExists := func(key, value string) {
		if value != "" {
			values.Add(key, value)
		}
	}
	addIfExists("metadataPrefix", r.Prefix)
	addIfExists("set", r.Set)
	addIfExists("identifier", r.Identifier)

	return fmt.Sprintf("%s?%s", endpoint, values.Encode())
}

// resumptionToken is part of OAI flow control (3.5).
type resumptionToken struct {
	Value            string `xml:",chardata"`
	Cursor           string `xml:"cursor,attr"`
	CompleteListSize string `xml:"completeListSize,attr"`
}

// empty reports whether the token terminates the page loop. Some
// repositories close a list with a whitespace-only token.
func (t resumptionToken) empty() bool {
	return strings.TrimSpace(t.Value) == ""
}

// Set is a named sub-collection of the repository.
type Set struct {
	Spec string `xml:"setSpec" json:"id"`
	Name string `xml:"setName" json:"name"`
}

// Matches reports whether the set's spec or name contains the filter,
// case-insensitively. An empty filter matches everything.
func (s Set) Matches(filter string) bool {
	f := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(s.Spec), f) ||
		strings.Contains(strings.ToLower(s.Name), f)
}

// Header is the record header returned by ListIdentifiers.
type Header struct {
	Identifier string `xml:"identifier"`
	Datestamp  string `xml:"datestamp"`
	Status     string `xml:"status,attr"`
}

// Deleted reports whether the repository marked the record deleted.
func (h Header) Deleted() bool {
	return h.Status == "deleted"
}

// Response can hold any answer to a request this client issues.
type Response struct {
	XMLName xml.Name `xml:"OAI-PMH"`
	Date    string   `xml:"responseDate"`
	Error   struct {
		Code    string `xml:"code,attr"`
		Message string `xml:",chardata"`
	} `xml:"error"`
	ListSets struct {
		Sets  []Set           `xml:"set"`
		Token resumptionToken `xml:"resumptionToken"`
	} `xml:"ListSets"`
	ListIdentifiers struct {
		Headers []Header        `xml:"header"`
		Token   resumptionToken `xml:"resumptionToken"`
	} `xml:"ListIdentifiers"`
	GetRecord struct {
		Record struct {
			Header   Header `xml:"header"`
			Metadata struct {
				DC *metadata.DublinCore `xml:"dc"`
			} `xml:"metadata"`
		} `xml:"record"`
	} `xml:"GetRecord"`
}

// Client is a sequential OAI-PMH client. Every call blocks until the
// repository answers or the timeout elapses; there is no retrying.
type Client struct {
	endpoint       string
	prefix         string
	delay          time.Duration
	discoveryDelay time.Duration
	userAgent      string
	client         *http.Client
}

// NewClient returns a client for one repository endpoint. The delays
// are slept before each outbound request, including the first.
func NewClient(endpoint, prefix string, delay, discoveryDelay, timeout time.Duration, userAgent string) *Client {
	return &Client{
		endpoint:       endpoint,
		prefix:         prefix,
		delay:          delay,
		discoveryDelay: discoveryDelay,
		userAgent:      userAgent,
		client:         &http.Client{Timeout: timeout},
	}
}

// do executes a single request after the politeness pause.
func (c *Client) do(ctx context.Context, req Request, pause time.Duration) (*Response, error) {
	if pause > 0 {
		select {
		case <-time.After(pause):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	u := req.URL(c.endpoint)
	logger.Debug("GET %s", u)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, u)
	}

	var response Response
	if err := xml.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if response.Error.Code != "" {
		return nil, OAIError{Code: response.Error.Code, Message: strings.TrimSpace(response.Error.Message)}
	}

	return &response, nil
}

// ListSets walks all ListSets pages and returns the sets whose spec or
// name contains the filter. Any error aborts the whole walk.
func (c *Client) ListSets(ctx context.Context, filter string) ([]Set, error) {
	req := Request{Verb: "ListSets"}
	var sets []Set

	for {
		resp, err := c.do(ctx, req, c.discoveryDelay)
		if err != nil {
			return nil, fmt.Errorf("ListSets: %w", err)
		}

		// Filter per page to bound memory on large repositories.
		for _, s := range resp.ListSets.Sets {
			if s.Matches(filter) {
				sets = append(sets, s)
			}
		}

		if resp.ListSets.Token.empty() {
			return sets, nil
		}
		req = Request{Verb: "ListSets", ResumptionToken: strings.TrimSpace(resp.ListSets.Token.Value)}
	}
}

// ListIdentifiers walks all ListIdentifiers pages for one set and
// returns the headers of all non-deleted records. noRecordsMatch is an
// empty result, not an error.
func (c *Client) ListIdentifiers(ctx context.Context, set string) ([]Header, error) {
	req := Request{Verb: "ListIdentifiers", Prefix: c.prefix, Set: set}
	var headers []Header

	for {
		resp, err := c.do(ctx, req, c.delay)
		if err != nil {
			var oaiErr OAIError
			if errors.As(err, &oaiErr) && oaiErr.Code == errNoRecordsMatch {
				return headers, nil
			}
			return nil, fmt.Errorf("ListIdentifiers set %q: %w", set, err)
		}

		for _, h := range resp.ListIdentifiers.Headers {
			if h.Deleted() || h.Identifier == "" {
				continue
			}
			headers = append(headers, h)
		}

		if resp.ListIdentifiers.Token.empty() {
			return headers, nil
		}
		req = Request{Verb: "ListIdentifiers", ResumptionToken: strings.TrimSpace(resp.ListIdentifiers.Token.Value)}
	}
}

// GetRecord fetches the Dublin Core container of one record. A response
// without an oai_dc container yields (nil, nil): nothing to report,
// distinct from a transport failure.
func (c *Client) GetRecord(ctx context.Context, identifier string) (*metadata.DublinCore, error) {
	req := Request{Verb: "GetRecord", Prefix: c.prefix, Identifier: identifier}

	resp, err := c.do(ctx, req, c.delay)
	if err != nil {
		return nil, fmt.Errorf("GetRecord %s: %w", identifier, err)
	}

	return resp.GetRecord.Record.Metadata.DC, nil
}
