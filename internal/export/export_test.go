package export

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/launchtracker/internal/models"
)

func sample() []models.Launch {
	return []models.Launch{
		{
			ID: "a", Name: `Promo "Natale"`, Shop: "shop-italia", Status: "in-corso", Priority: "alta",
			StartDate: "2026-12-01", EndDate: "2026-12-24", Notes: "riga, con virgola",
			Subtasks:     []models.SubTask{{ID: "s1", Name: "uno"}},
			CustomFields: map[string]models.FieldValue{"custom-budget-x": models.NumberValue(1200)},
		},
		{ID: "b", Name: "Vuoto"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"Nome","Shop","Stato","Priorita'","Data Inizio","Data Fine","Note"`, lines[0])
	assert.Equal(t, `"Promo ""Natale""","shop-italia","in-corso","alta","2026-12-01","2026-12-24","riga, con virgola"`, lines[1])
	assert.Equal(t, `"Vuoto","","","","","",""`, lines[2])
	assert.False(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, `"Nome","Shop","Stato","Priorita'","Data Inizio","Data Fine","Note"`, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sample()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[\n  {\n    \"id\": \"a\""))
	assert.Contains(t, out, `"custom-budget-x": 1200`)
	assert.Contains(t, out, `"name": "uno"`)
	assert.NotContains(t, out, "deletedAt")

	var back []models.Launch
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Len(t, back, 2)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]", buf.String())
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()

	path, err := ToFile(dir, CSV, sample())
	require.NoError(t, err)
	assert.Equal(t, "lanci-creativi.csv", path[len(dir)+1:])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `"Nome"`))

	path, err = ToFile(dir, JSON, sample())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, CSV, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
