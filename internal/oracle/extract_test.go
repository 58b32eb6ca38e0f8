package oracle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bugbash/internal/oracle"
)

func TestExtractVerdictCleanJSON(t *testing.T) {
	v := oracle.ExtractVerdict(`{"fixed": true, "explanation": "Swapped the comparison."}`)
	assert.True(t, v.Fixed)
	assert.Equal(t, "Swapped the comparison.", v.Explanation)
}

func TestExtractVerdictJSONBuriedInProse(t *testing.T) {
	text := "Sure! Here is my assessment:\n\n" +
		`{"fixed": false, "explanation": "The base case is still wrong."}` +
		"\n\nLet me know if you need anything else."
	v := oracle.ExtractVerdict(text)
	assert.False(t, v.Fixed)
	assert.Equal(t, "The base case is still wrong.", v.Explanation)
}

func TestExtractVerdictNoBraces(t *testing.T) {
	v := oracle.ExtractVerdict("the fix looks good to me")
	assert.False(t, v.Fixed)
	assert.Equal(t, "Could not parse validation result.", v.Explanation)
}

func TestExtractVerdictMalformedJSON(t *testing.T) {
	v := oracle.ExtractVerdict(`{"fixed": yes, "explanation": }`)
	assert.False(t, v.Fixed)
	assert.Equal(t, "Could not parse validation result.", v.Explanation)
}

func TestExtractVerdictEmptyInput(t *testing.T) {
	v := oracle.ExtractVerdict("")
	assert.False(t, v.Fixed)
	assert.Equal(t, "Could not parse validation result.", v.Explanation)
}

func TestExtractVerdictMissingFields(t *testing.T) {
	// A decodable object without the verdict fields degrades to fixed:false
	// rather than erroring.
	v := oracle.ExtractVerdict(`{"something": "else"}`)
	assert.False(t, v.Fixed)
}
