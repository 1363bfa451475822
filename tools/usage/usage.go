package usage

import (
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
)

const ToolName = "CheckUsage"

// Request takes no fields, the usage endpoint is a singleton call.
type Request struct{}

// Result reports account credits and concurrency.
type Result struct {
	scrapingbee.UsageResult
}

func (r *Result) String() string {
	return fmt.Sprintf("credits: %d used, %d remaining; concurrency: %d of %d",
		r.CreditsUsed, r.CreditsRemaining, r.ConcurrencyUsed, r.ConcurrencyLimit)
}

// Tool checks ScrapingBee API usage, remaining credits and account limits.
type Tool struct {
	name        string
	description string
	funcParams  any

	client *scrapingbee.Client
}

// ensure Tool implements the tools.Tool interface
var _ tools.Tool[Request, Result] = (*Tool)(nil)

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
		description: "Checks current ScrapingBee API usage statistics including remaining credits, " +
			"used credits and concurrency limits. Takes no parameters, safe to call repeatedly.",
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

func (t *Tool) Run(ctx context.Context, _ *Request) (*Result, error) {
	res, err := t.client.Usage(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{UsageResult: *res}, nil
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	var req Request
	if input != "" {
		if err := ljson.Unmarshal(utils.CleanJSON([]byte(input)), &req); err != nil {
			return "", tools.ErrFailedUnmarshalInput
		}
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
