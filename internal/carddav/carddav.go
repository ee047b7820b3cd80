// Package carddav fetches contacts from a CardDAV server over HTTPS
// with Basic authentication. Discovery follows the well-known URI to
// the principal, the addressbook home, and the addressbook
// collections, then pulls the member cards with a multiget report.
package carddav

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexjbarnes/contact-sync/internal/contacts"
	apperrors "github.com/alexjbarnes/contact-sync/internal/errors"
)

const (
	wellKnownPath  = "/.well-known/carddav"
	requestTimeout = 2 * time.Minute

	// maxConcurrentBooks caps parallel per-addressbook fetches.
	maxConcurrentBooks = 4
)

// Client is a CardDAV contacts fetcher. It implements
// contacts.RemoteFetcher.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client with its own HTTP transport. Redirects
// are not followed automatically; discovery reads them explicitly.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
	}
}

// FetchContacts returns every card in every addressbook of the
// account, with addressbooks fetched concurrently.
func (c *Client) FetchContacts(ctx context.Context, username, password, serverURL string) ([]contacts.RemoteRecord, error) {
	creds := credentials{username: username, password: password}

	root, err := c.discoverRoot(ctx, serverURL, creds)
	if err != nil {
		return nil, fmt.Errorf("discovering carddav root: %w", err)
	}

	principal, err := c.fetchPrincipalURL(ctx, root, creds)
	if err != nil {
		return nil, fmt.Errorf("fetching principal: %w", err)
	}

	home, err := c.fetchHomeURL(ctx, root, principal, creds)
	if err != nil {
		return nil, fmt.Errorf("fetching addressbook home: %w", err)
	}

	books, err := c.fetchAddressBooks(ctx, home, creds)
	if err != nil {
		return nil, fmt.Errorf("listing addressbooks: %w", err)
	}

	c.logger.Debug("carddav discovery complete",
		slog.String("home", home),
		slog.Int("addressbooks", len(books)),
	)

	var (
		mu      sync.Mutex
		records []contacts.RemoteRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentBooks)

	for _, book := range books {
		g.Go(func() error {
			cards, err := c.fetchCards(gctx, book, creds)
			if err != nil {
				return fmt.Errorf("fetching cards from %s: %w", book, err)
			}

			mu.Lock()
			records = append(records, cards...)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

type credentials struct {
	username string
	password string
}

// discoverRoot resolves the service root via the well-known URI,
// following a redirect when the server answers with one. Servers
// without the well-known endpoint fall back to the configured URL.
func (c *Client) discoverRoot(ctx context.Context, serverURL string, creds credentials) (string, error) {
	base, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parsing server url: %w", err)
	}

	wellKnown := base.ResolveReference(&url.URL{Path: wellKnownPath})

	req, err := http.NewRequestWithContext(ctx, "PROPFIND", wellKnown.String(), nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(creds.username, creds.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("well-known discovery failed", slog.String("error", err.Error()))
		return base.String(), nil
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		if location := resp.Header.Get("Location"); location != "" {
			redirected, err := wellKnown.Parse(location)
			if err != nil {
				return "", fmt.Errorf("parsing redirect location: %w", err)
			}

			// Keep the configured scheme; some servers redirect to
			// a bare host.
			redirected.Scheme = base.Scheme

			return redirected.String(), nil
		}
	}

	return base.String(), nil
}

func (c *Client) fetchPrincipalURL(ctx context.Context, root string, creds credentials) (string, error) {
	const body = `<?xml version="1.0" encoding="utf-8"?>
<d:propfind xmlns:d="DAV:">
  <d:prop>
    <d:current-user-principal/>
  </d:prop>
</d:propfind>`

	ms, err := c.davRequest(ctx, "PROPFIND", root, "0", body, creds)
	if err != nil {
		return "", err
	}

	for _, resp := range ms.Responses {
		for _, ps := range resp.Propstats {
			if statusOK(ps.Status) && ps.Prop.CurrentUserPrincipal.Href != "" {
				return resolveHref(root, ps.Prop.CurrentUserPrincipal.Href)
			}
		}
	}

	return "", fmt.Errorf("no current-user-principal in response")
}

func (c *Client) fetchHomeURL(ctx context.Context, root, principal string, creds credentials) (string, error) {
	const body = `<?xml version="1.0" encoding="utf-8"?>
<d:propfind xmlns:d="DAV:" xmlns:card="urn:ietf:params:xml:ns:carddav">
  <d:prop>
    <card:addressbook-home-set/>
  </d:prop>
</d:propfind>`

	ms, err := c.davRequest(ctx, "PROPFIND", principal, "0", body, creds)
	if err != nil {
		return "", err
	}

	for _, resp := range ms.Responses {
		for _, ps := range resp.Propstats {
			if statusOK(ps.Status) && ps.Prop.AddressbookHomeSet.Href != "" {
				return resolveHref(root, ps.Prop.AddressbookHomeSet.Href)
			}
		}
	}

	return "", fmt.Errorf("no addressbook-home-set in response")
}

// fetchAddressBooks lists the collections under the home URL and
// keeps those whose resourcetype marks them as addressbooks.
func (c *Client) fetchAddressBooks(ctx context.Context, home string, creds credentials) ([]string, error) {
	const body = `<?xml version="1.0" encoding="utf-8"?>
<d:propfind xmlns:d="DAV:" xmlns:cs="http://calendarserver.org/ns/">
  <d:prop>
    <d:displayname/>
    <cs:getctag/>
    <d:resourcetype/>
  </d:prop>
</d:propfind>`

	ms, err := c.davRequest(ctx, "PROPFIND", home, "1", body, creds)
	if err != nil {
		return nil, err
	}

	var books []string

	for _, resp := range ms.Responses {
		for _, ps := range resp.Propstats {
			if statusOK(ps.Status) && ps.Prop.ResourceType.AddressBook != nil {
				book, err := resolveHref(home, resp.Href)
				if err != nil {
					return nil, err
				}

				books = append(books, book)
			}
		}
	}

	return books, nil
}

// fetchCards pulls every card in one addressbook: an etag-only query
// to enumerate member hrefs, then a multiget for etag and card data.
func (c *Client) fetchCards(ctx context.Context, book string, creds credentials) ([]contacts.RemoteRecord, error) {
	const queryBody = `<?xml version="1.0" encoding="utf-8"?>
<card:addressbook-query xmlns:d="DAV:" xmlns:card="urn:ietf:params:xml:ns:carddav">
  <d:prop>
    <d:getetag/>
  </d:prop>
  <card:filter>
    <card:prop-filter name="FN"/>
  </card:filter>
</card:addressbook-query>`

	ms, err := c.davRequest(ctx, "REPORT", book, "1", queryBody, creds)
	if err != nil {
		return nil, err
	}

	var hrefs []string

	for _, resp := range ms.Responses {
		if resp.Href != "" {
			hrefs = append(hrefs, xmlEscape(resp.Href))
		}
	}

	if len(hrefs) == 0 {
		return nil, nil
	}

	multigetBody := `<?xml version="1.0" encoding="utf-8"?>
<card:addressbook-multiget xmlns:d="DAV:" xmlns:card="urn:ietf:params:xml:ns:carddav">
  <d:prop>
    <d:getetag/>
    <card:address-data/>
  </d:prop>
  <d:href>` + strings.Join(hrefs, "</d:href>\n  <d:href>") + `</d:href>
</card:addressbook-multiget>`

	ms, err = c.davRequest(ctx, "REPORT", book, "1", multigetBody, creds)
	if err != nil {
		return nil, err
	}

	var records []contacts.RemoteRecord

	for _, resp := range ms.Responses {
		for _, ps := range resp.Propstats {
			if !statusOK(ps.Status) || ps.Prop.AddressData == "" {
				continue
			}

			cardURL, err := resolveHref(book, resp.Href)
			if err != nil {
				return nil, err
			}

			records = append(records, contacts.RemoteRecord{
				URL:  cardURL,
				Etag: ps.Prop.Etag,
				Data: ps.Prop.AddressData,
			})
		}
	}

	return records, nil
}

// multistatus is the subset of the WebDAV multistatus response the
// client needs. Property names match on local name regardless of the
// server's namespace prefixes.
type multistatus struct {
	XMLName   xml.Name      `xml:"multistatus"`
	Responses []davResponse `xml:"response"`
}

type davResponse struct {
	Href      string     `xml:"href"`
	Propstats []propstat `xml:"propstat"`
}

type propstat struct {
	Status string  `xml:"status"`
	Prop   davProp `xml:"prop"`
}

type davProp struct {
	Etag                 string       `xml:"getetag"`
	AddressData          string       `xml:"address-data"`
	DisplayName          string       `xml:"displayname"`
	CurrentUserPrincipal hrefValue    `xml:"current-user-principal"`
	AddressbookHomeSet   hrefValue    `xml:"addressbook-home-set"`
	ResourceType         resourceType `xml:"resourcetype"`
}

type hrefValue struct {
	Href string `xml:"href"`
}

type resourceType struct {
	AddressBook *struct{} `xml:"addressbook"`
}

func (c *Client) davRequest(ctx context.Context, method, target, depth, body string, creds credentials) (*multistatus, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(creds.username, creds.password)
	req.Header.Set("Content-Type", `application/xml; charset="utf-8"`)
	req.Header.Set("Depth", depth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, apperrors.ErrInvalidCredentials
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: unexpected status %s", method, target, resp.Status)
	}

	var ms multistatus
	if err := xml.NewDecoder(resp.Body).Decode(&ms); err != nil {
		return nil, fmt.Errorf("decoding multistatus: %w", err)
	}

	return &ms, nil
}

func statusOK(status string) bool {
	return status == "" || strings.Contains(status, "200")
}

// resolveHref resolves a possibly relative href against a base URL.
func resolveHref(base, href string) (string, error) {
	if href == "" {
		return "", fmt.Errorf("empty href")
	}

	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parsing href: %w", err)
	}

	return b.ResolveReference(ref).String(), nil
}

func xmlEscape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))

	return b.String()
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
