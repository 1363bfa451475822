package websearch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/scrapebee/pkg/scrapingbee"
	"github.com/effective-security/scrapebee/tools"
	"github.com/effective-security/scrapebee/tools/websearch"
	"github.com/effective-security/scrapebee/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Tool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/store/google", r.URL.Path)
		assert.Equal(t, "What is LangChain?", r.URL.Query().Get("search"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"organic_results": [
				{"position": 1, "title": "LangChain", "url": "https://langchain.com", "description": "Framework for LLM apps"},
				{"position": 2, "title": "LangChain docs", "url": "https://docs.langchain.com", "description": "Documentation"}
			]
		}`))
	}))
	defer server.Close()

	client, err := scrapingbee.New("testkey",
		scrapingbee.WithBaseURL(server.URL),
		scrapingbee.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	tool, err := websearch.New(client)
	require.NoError(t, err)

	assert.Equal(t, websearch.ToolName, tool.Name())
	assert.Contains(t, tool.Description(), "Google searches")

	params := utils.ToJSON(tool.Parameters())
	assert.Contains(t, params, "The search query text")

	ctx := context.Background()

	_, err = tool.Call(ctx, "plain string")
	assert.True(t, errors.Is(err, tools.ErrFailedUnmarshalInput))

	input := &websearch.Request{
		Search: "What is LangChain?",
	}
	resp, err := tool.Run(ctx, input)
	require.NoError(t, err)
	require.Len(t, resp.OrganicResults, 2)
	assert.Equal(t, "LangChain", resp.OrganicResults[0].Title)
	assert.Equal(t, "https://docs.langchain.com", resp.OrganicResults[1].URL)
	assert.Equal(t, 2, resp.Count())

	exp := `- URL: https://langchain.com
  TITLE: LangChain
  SNIPPET: Framework for LLM apps
- URL: https://docs.langchain.com
  TITLE: LangChain docs
  SNIPPET: Documentation
`
	assert.Equal(t, exp, resp.String())
}

func Test_Tool_SearchType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "news", r.URL.Query().Get("search_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic_results":[]}`))
	}))
	defer server.Close()

	client, err := scrapingbee.New("testkey",
		scrapingbee.WithBaseURL(server.URL),
		scrapingbee.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	tool, err := websearch.New(client)
	require.NoError(t, err)

	_, err = tool.Run(context.Background(), &websearch.Request{
		Search:     "golang",
		SearchType: scrapingbee.SearchNews,
	})
	require.NoError(t, err)

	_, err = tool.Run(context.Background(), &websearch.Request{
		Search:     "golang",
		SearchType: scrapingbee.SearchType("videos"),
	})
	require.Error(t, err)
	assert.Equal(t, scrapingbee.KindInvalidRequest, scrapingbee.KindOf(err))
}

func Test_Tool_EmptyQuery(t *testing.T) {
	var count int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&count, 1)
	}))
	defer server.Close()

	client, err := scrapingbee.New("testkey",
		scrapingbee.WithBaseURL(server.URL),
		scrapingbee.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	tool, err := websearch.New(client)
	require.NoError(t, err)

	_, err = tool.Run(context.Background(), &websearch.Request{})
	require.Error(t, err)
	assert.Equal(t, scrapingbee.KindInvalidRequest, scrapingbee.KindOf(err))
	assert.False(t, scrapingbee.IsRetriable(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&count))
}
