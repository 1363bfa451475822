package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"

	"github.com/bububa/ljson"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/scrapebee/pkg/scrapingbee"
	"github.com/effective-security/scrapebee/schema"
	"github.com/effective-security/scrapebee/tools"
	"github.com/effective-security/scrapebee/utils"
	"github.com/go-playground/validator/v10"
)

const ToolName = "ScrapeURL"

// Request represents the tool input.
type Request struct {
	URL     string            `json:"URL" yaml:"URL" validate:"required,url" jsonschema:"title=URL,description=The fully qualified URL to scrape; must include http:// or https://."`
	Params  map[string]any    `json:"Params,omitempty" yaml:"Params,omitempty" jsonschema:"title=Params,description=Optional ScrapingBee parameters such as render_js; premium_proxy; country_code; screenshot_full_page or extract_rules. Nested objects are forwarded as JSON strings. Unknown keys are rejected upstream."`
	Headers map[string]string `json:"Headers,omitempty" yaml:"Headers,omitempty" jsonschema:"title=Headers,description=Custom headers to forward to the target website."`
}

// Result represents the scraped content. Binary bodies are base64-encoded
// when the result is rendered as JSON.
type Result struct {
	ContentKind scrapingbee.ContentKind `json:"content_kind"`
	StatusCode  int                     `json:"status_code"`
	Body        []byte                  `json:"body"`
}

func (r *Result) String() string {
	if r.ContentKind == scrapingbee.ContentBinaryDocument {
		return fmt.Sprintf("binary content: %d bytes", len(r.Body))
	}
	return string(r.Body)
}

// Tool scrapes web content through the ScrapingBee API.
type Tool struct {
	name        string
	description string
	funcParams  any

	client *scrapingbee.Client
}

// ensure Tool implements the tools.Tool interface
var _ tools.Tool[Request, Result] = (*Tool)(nil)

var validate = validator.New()

func New(client *scrapingbee.Client) (*Tool, error) {
	if client == nil {
		return nil, errors.New("scrapingbee client is required")
	}
	sc, err := schema.New(reflect.TypeOf(Request{}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &Tool{
		name: ToolName,
		description: "Scrapes web content, takes screenshots, or downloads files from URLs. " +
			"Supports JavaScript rendering, mobile simulation, proxy geolocation, and structured data extraction. " +
			"For text content the scraped HTML is returned directly; PDFs, images and screenshots are returned as binary content.",
		funcParams: sc.Parameters,
		client:     client,
	}, nil
}

func (t *Tool) Name() string {
	return t.name
}

func (t *Tool) Description() string {
	return t.description
}

func (t *Tool) Parameters() any {
	return t.funcParams
}

func (t *Tool) Run(ctx context.Context, req *Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	res, err := t.client.Scrape(ctx, req.URL, req.Params, req.Headers)
	if err != nil {
		return nil, err
	}
	return &Result{
		ContentKind: res.ContentKind,
		StatusCode:  res.StatusCode,
		Body:        res.Body,
	}, nil
}

// validateRequest rejects bad input before any network call.
func validateRequest(req *Request) error {
	if err := validate.Struct(req); err != nil {
		return scrapingbee.NewInvalidRequestf("invalid request: %s", err.Error())
	}
	u, err := url.Parse(req.URL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return scrapingbee.NewInvalidRequestf("URL must be absolute with http or https scheme")
	}
	return nil
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	var req Request
	if err := ljson.Unmarshal(utils.CleanJSON([]byte(input)), &req); err != nil {
		return "", tools.ErrFailedUnmarshalInput
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	bs, err := json.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal output")
	}
	return string(bs), nil
}
