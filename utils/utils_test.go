package utils_test

import (
	"testing"

	"github.com/effective-security/scrapebee/utils"
	"github.com/stretchr/testify/assert"
)

func Test_CleanJSON(t *testing.T) {
	llmOutput := "\n```json\n\n{\"URL\": \"https://example.com\"}\n\n```\n\n"
	clean := utils.CleanJSON([]byte(llmOutput))

	expected := "{\"URL\": \"https://example.com\"}"
	assert.Equal(t, expected, string(clean))

	llmOutput = "Here you go:\n```json\n\n[{\"URL\": \"https://example.com\"}]\n```\n\n"
	clean = utils.CleanJSON([]byte(llmOutput))

	expected = "[{\"URL\": \"https://example.com\"}]"
	assert.Equal(t, expected, string(clean))
}

func Test_TrimBackticks(t *testing.T) {
	expected := "{\"Search\": \"what is golang\"}"

	assert.Equal(t, expected, utils.TrimBackticks("\n```json\n\n{\"Search\": \"what is golang\"}\n\n```\n\n"))
	// the same
	assert.Equal(t, expected, utils.TrimBackticks(expected))
	assert.Equal(t, expected, utils.TrimBackticks("\n```\n\n{\"Search\": \"what is golang\"}\n\n```\n\n"))
	assert.Equal(t, expected, utils.TrimBackticks("\n```{\"Search\": \"what is golang\"}\n\n```\n\n"))
}

func Test_BackticksJSON(t *testing.T) {
	json := "{\"Search\": \"what is golang\"}"
	wrapped := utils.BackticksJSON(json)

	expected := "\n```json\n{\"Search\": \"what is golang\"}\n```\n"
	assert.Equal(t, expected, wrapped)
}

func Test_Stringify(t *testing.T) {
	assert.Equal(t, "plain", utils.Stringify("plain"))

	type val struct {
		Name string `json:"name"`
	}
	exp := "\n```json\n{\n\t\"name\": \"x\"\n}\n```\n"
	assert.Equal(t, exp, utils.Stringify(val{Name: "x"}))
}
