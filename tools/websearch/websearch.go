package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/bububa/ljson"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/scrapebee/pkg/scrapingbee"
	"github.com/effective-security/scrapebee/schema"
	"github.com/effective-security/scrapebee/tools"
	"github.com/effective-security/scrapebee/utils"
	"github.com/go-playground/validator/v10"
)

const ToolName = "GoogleSearch"

// Request represents the tool input.
type Request struct {
	Search     string                 `json:"Search" yaml:"Search" validate:"required" jsonschema:"title=Search,description=The search query text to send to Google."`
	SearchType scrapingbee.SearchType `json:"SearchType,omitempty" yaml:"SearchType,omitempty" jsonschema:"title=SearchType,description=Type of Google search,default=classic,enum=classic,enum=news,enum=maps,enum=images"`
	Params     map[string]any         `json:"Params,omitempty" yaml:"Params,omitempty" jsonschema:"title=Params,description=Optional search parameters such as country_code; language; nb_results or page."`
}

// Result represents the structure for a search response.
type Result struct {
	scrapingbee.SearchResult
}

func (r *Result) String() string {
	var buf bytes.Buffer
	for _, res := range r.OrganicResults {
		fmt.Fprintf(&buf, "- URL: %s\n", res.URL)
		fmt.Fprintf(&buf, "  TITLE: %s\n", res.Title)
		fmt.Fprintf(&buf, "  SNIPPET: %s\n", res.Snippet)
	}
	return buf.String()
}

// Tool provides Google search through the ScrapingBee API.
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
		description: "Performs Google searches across different search types: web, news, maps and images. " +
			"Returns the organic results in order, with title, URL and snippet per entry.",
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
	if err := validate.Struct(req); err != nil {
		return nil, scrapingbee.NewInvalidRequestf("invalid request: %s", err.Error())
	}
	searchType := req.SearchType
	if searchType == "" {
		searchType = scrapingbee.SearchClassic
	}
	if !searchType.Valid() {
		return nil, scrapingbee.NewInvalidRequestf("unsupported search type: %s", searchType)
	}

	res, err := t.client.Search(ctx, req.Search, searchType, req.Params)
	if err != nil {
		return nil, err
	}
	return &Result{SearchResult: *res}, nil
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
