package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	OP    string  `json:"OP"`
	Hours float64 `json:"tiempo"`
}

type testEnvelope struct {
	Records []testRow `json:"registros"`
}

func TestExtractJSONArray_CleanJSON(t *testing.T) {
	raw := `[{"OP":"7027","tiempo":1.5},{"OP":"7030","tiempo":8}]`
	rows, err := ExtractJSONArray[testRow](raw, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "7027", rows[0].OP)
	assert.Equal(t, 8.0, rows[1].Hours)
}

func TestExtractJSONArray_FencedJSON(t *testing.T) {
	raw := "```json\n[{\"OP\":\"7027-7028\",\"tiempo\":2}]\n```"
	rows, err := ExtractJSONArray[testRow](raw, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "7027-7028", rows[0].OP)
}

func TestExtractJSONArray_SurroundingProse(t *testing.T) {
	raw := "Aquí están los registros:\n[{\"OP\":\"7027\",\"tiempo\":1}]\nEspero que sirva."
	rows, err := ExtractJSONArray[testRow](raw, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExtractJSONArray_BracketsInsideStrings(t *testing.T) {
	raw := `[{"OP":"[7027]","tiempo":1}]`
	rows, err := ExtractJSONArray[testRow](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "[7027]", rows[0].OP)
}

func TestExtractJSONArray_LeadingDecimal(t *testing.T) {
	raw := `[{"OP":"7027","tiempo":.5}]`
	rows, err := ExtractJSONArray[testRow](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, rows[0].Hours)
}

func TestExtractJSONArray_Comments(t *testing.T) {
	raw := "[\n  // primera fila\n  {\"OP\":\"7027\",\"tiempo\":1}\n]"
	rows, err := ExtractJSONArray[testRow](raw, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExtractJSONArray_NoJSON(t *testing.T) {
	_, err := ExtractJSONArray[testRow]("No encontré datos en la hoja.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSONArray_Unbalanced(t *testing.T) {
	_, err := ExtractJSONArray[testRow](`[{"OP":"7027"}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSONArray_ValidationFailure(t *testing.T) {
	validator := func(rows []testRow) error {
		if len(rows) == 0 {
			return fmt.Errorf("empty")
		}
		return nil
	}
	_, err := ExtractJSONArray("[]", validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestExtractJSON_Envelope(t *testing.T) {
	raw := "Resultado:\n```\n{\"registros\":[{\"OP\":\"7027\",\"tiempo\":1}]}\n```"
	env, err := ExtractJSON[testEnvelope](raw, nil)
	require.NoError(t, err)
	require.Len(t, env.Records, 1)
	assert.Equal(t, "7027", env.Records[0].OP)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON[testEnvelope](`{"registros": broken}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSONArray_TrailingCommas(t *testing.T) {
	raw := "[\n  {\"OP\":\"7027\",\"tiempo\":1,},\n  {\"OP\":\"7028\",\"tiempo\":2},\n]"
	rows, err := ExtractJSONArray[testRow](raw, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "7028", rows[1].OP)
}

func TestExtractJSONArray_BlockComment(t *testing.T) {
	raw := `[/* una fila */{"OP":"7027","tiempo":-.5}]`
	rows, err := ExtractJSONArray[testRow](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, -0.5, rows[0].Hours)
}

func TestRepairJSON_LeavesStringsAlone(t *testing.T) {
	in := `{"actividad":"REVISION // PLANOS, .5 ,]","tiempo":.5}`
	assert.Equal(t, `{"actividad":"REVISION // PLANOS, .5 ,]","tiempo":0.5}`, repairJSON(in))
}
