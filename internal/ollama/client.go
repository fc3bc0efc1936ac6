// Package ollama fetches the model listing and model detail pages of the Ollama library.
package ollama

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"ollama-catalog/internal/assert"
	"ollama-catalog/internal/restyutil"
	"ollama-catalog/internal/telemetry"
)

const (
	report_client_discover     = "client.discover"
	report_client_fetch_detail = "client.fetch-detail"
)

var libraryHref = regexp.MustCompile(`^/library/`)

type ClientOptions struct {
	BaseUrl   string
	UserAgent string
	Timeout   time.Duration
	// CloudflareBypass wraps the transport so requests look like a browser's TLS handshake.
	CloudflareBypass bool
	// DumpDir, when set, receives a copy of every fetched page.
	DumpDir string
}

type Client struct {
	http *resty.Client
	tel  telemetry.API
	dump restyutil.FilesystemOutput
}

func NewClient(opts ClientOptions, tel telemetry.API) (Client, error) {
	assert.NotNil(tel)

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return Client{}, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return Client{}, fmt.Errorf("base url '%s' is not absolute", opts.BaseUrl)
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(opts.BaseUrl, "/"))
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	if opts.UserAgent != "" {
		client.SetHeader("user-agent", opts.UserAgent)
	}
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	telemetry.InstrumentResty(client, tel)

	var dump restyutil.FilesystemOutput
	if opts.DumpDir != "" {
		dump, err = restyutil.NewFilesystemOutput(opts.DumpDir)
		if err != nil {
			return Client{}, fmt.Errorf("open dump dir: %w", err)
		}
	}

	return Client{http: client, tel: tel, dump: dump}, nil
}

func (c Client) getDocument(ctx context.Context, endpoint string) (*goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch: %s returned status %d", endpoint, res.StatusCode())
	}
	c.dump.Write(endpoint, res.Body())

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// Discover returns the sorted, distinct ids of every model linked from the
// search page. Ids keep the percent-encoding of the markup. Failures are
// returned, reporting them is up to the caller.
func (c Client) Discover(ctx context.Context) ([]string, error) {
	doc, err := c.getDocument(ctx, "/search")
	if err != nil {
		return nil, fmt.Errorf("search page: %w", err)
	}

	var ids []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if !libraryHref.MatchString(href) {
			return
		}
		link, err := url.Parse(href)
		if err != nil {
			c.tel.ReportWarning(report_client_discover, fmt.Errorf("parse href: %w", err), href)
			return
		}
		path := link.EscapedPath()
		id := path[strings.LastIndex(path, "/")+1:]
		if id == "" {
			return
		}
		ids = append(ids, id)
	})

	slices.Sort(ids)
	ids = slices.Compact(ids)

	c.tel.ReportDebug("discovered models", len(ids))
	return ids, nil
}

// FetchDetail returns the parsed detail page of model id. The id is used as
// Discover returned it, already escaped.
func (c Client) FetchDetail(ctx context.Context, id string) (*goquery.Document, error) {
	doc, err := c.getDocument(ctx, "/library/"+id)
	if err != nil {
		c.tel.ReportDebug(report_client_fetch_detail, id, err)
		return nil, err
	}
	return doc, nil
}
