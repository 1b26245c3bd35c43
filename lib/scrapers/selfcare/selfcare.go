package selfcare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/jhutar/o2family-info-o-cisle/lib/htmlutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

var ErrLoginFailed = fmt.Errorf("failed to login to the self-care portal")

// DefaultBaseUrl is the production O2 Family self-care portal.
const DefaultBaseUrl = "https://moje.o2family.cz"

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl when empty
	BaseUrl string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	instrumentClient(client)

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

// LoginUsernamePassword posts the portal login form. Any transport error
// or error status aborts; a 200 that still renders the login form means
// rejected credentials and yields ErrLoginFailed. On success the landing
// page body is returned so it can be scanned for lines without another
// round trip.
func (c *Client) LoginUsernamePassword(ctx context.Context, username, password string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "client:LoginUsernamePassword")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"_username":  username,
			"_password":  password,
			"_logintype": "login",
		}).
		Post("/")
	if err != nil {
		span.SetStatus(codes.Error, "failed to make login request")
		return nil, err
	}
	if res.StatusCode() >= 400 {
		span.SetStatus(codes.Error, "login request rejected")
		return nil, fmt.Errorf("login request returned status %d", res.StatusCode())
	}

	cookies := c.Http.GetClient().Jar.Cookies(c.BaseUrl)
	names := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		names = append(names, cookie.Name)
	}
	// expect to see PHPSESSID here
	slog.DebugContext(ctx, "cookies after login", "names", names)

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse landing page html")
		return nil, err
	}

	// rejected credentials render the login form again, usually with a
	// flash message
	if len(doc.Find("input[name=_username]").Nodes) > 0 {
		span.SetStatus(codes.Error, ErrLoginFailed.Error())
		for _, node := range doc.Find("div.alert-danger").Nodes {
			msg := htmlutil.CleanText(htmlutil.GetText(node))
			if msg != "" {
				return nil, fmt.Errorf("%w: %s", ErrLoginFailed, msg)
			}
		}
		return nil, ErrLoginFailed
	}

	return res.Body(), nil
}

// Lines re-fetches the landing page and scans it for the phone number to
// line identifier mapping.
func (c *Client) Lines(ctx context.Context) (map[string]string, error) {
	ctx, span := tracer.Start(ctx, "client:Lines")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch landing page")
		return nil, err
	}
	if res.StatusCode() >= 400 {
		span.SetStatus(codes.Error, "landing page request rejected")
		return nil, fmt.Errorf("landing page returned status %d", res.StatusCode())
	}

	return ScanLines(bytes.NewReader(res.Body())), nil
}

// TariffInfo fetches the tariff/usage record of one line. The payload is
// opaque, it is only checked to be well-formed JSON.
func (c *Client) TariffInfo(ctx context.Context, id string) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "client:TariffInfo")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/api/tariff-info/%s", url.PathEscape(id)))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch tariff info")
		return nil, err
	}
	if res.StatusCode() >= 400 {
		span.SetStatus(codes.Error, "tariff info request rejected")
		return nil, fmt.Errorf("tariff info for line %s returned status %d", id, res.StatusCode())
	}

	var payload json.RawMessage
	err = json.Unmarshal(res.Body(), &payload)
	if err != nil {
		span.SetStatus(codes.Error, "tariff info is not valid json")
		return nil, fmt.Errorf("tariff info for line %s is not valid json: %w", id, err)
	}
	return payload, nil
}
