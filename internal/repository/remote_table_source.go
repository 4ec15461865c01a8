package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"career-sync/internal/domain/career"

	"github.com/gocolly/colly/v2"
)

// RemoteCSVSource fetches the tables over HTTP from baseURL/<table name>.
type RemoteCSVSource struct {
	baseURL string
	names   TableNames
	timeout time.Duration
}

func NewRemoteCSVSource(baseURL string, names TableNames, timeout time.Duration) *RemoteCSVSource {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RemoteCSVSource{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		names:   names.withDefaults(),
		timeout: timeout,
	}
}

func (s *RemoteCSVSource) Name() string { return "http:" + s.baseURL }

func (s *RemoteCSVSource) LoadCorpus(ctx context.Context) (career.Corpus, error) {
	if s.baseURL == "" {
		return career.Corpus{}, errors.New("remote csv source: empty base url")
	}
	return loadCSVCorpus(ctx, s.names, s.fetch)
}

func (s *RemoteCSVSource) fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	target := s.baseURL + "/" + url.PathEscape(name)

	c := colly.NewCollector(colly.AllowURLRevisit())
	c.SetRequestTimeout(s.timeout)
	c.WithTransport(ctxTransport{ctx: ctx, base: http.DefaultTransport})

	var body []byte
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")
	})

	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			reqErr = fmt.Errorf("GET %s: status=%d: %w", target, r.StatusCode, err)
			return
		}
		reqErr = err
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.Visit(target); err != nil && reqErr == nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

// ctxTransport binds every request colly issues to the caller's context.
type ctxTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t ctxTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}
