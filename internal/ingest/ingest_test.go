package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLibrary(t *testing.T) *SynonymLibrary {
	t.Helper()
	lib, err := ParseSynonyms([]byte(`{
		"name": ["Player", "Full Name"],
		"primary_category": ["Position", "Pos"]
	}`))
	require.NoError(t, err)
	return lib
}

func TestCanonicalize(t *testing.T) {
	lib := testLibrary(t)

	assert.Equal(t, "name", lib.Canonicalize("Full Name"))
	assert.Equal(t, "name", lib.Canonicalize("  player "))
	assert.Equal(t, "primary_category", lib.Canonicalize("Pos"))
	assert.Equal(t, "shot_power", lib.Canonicalize("Shot Power"), "unmapped headers just normalize")
}

func TestParseSynonyms_Malformed(t *testing.T) {
	_, err := ParseSynonyms([]byte(`["not", "an", "object"]`))
	assert.Error(t, err)
}

func TestLoadSynonyms_MissingFileIsEmptyLibrary(t *testing.T) {
	lib, err := LoadSynonyms("/does/not/exist.json")
	require.NoError(t, err)
	assert.Equal(t, "age", lib.Canonicalize("Age"))
}

func TestReadCSV(t *testing.T) {
	lib := testLibrary(t)
	data := "Player,Age,Pos,pace\nAda,24,Winger,88\nBen,,Striker,72\n"

	frame, err := ReadCSV(strings.NewReader(data), lib)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "primary_category", "pace"}, frame.Columns())
	require.Equal(t, 2, frame.Len())

	age, ok := frame.Value(0, "age").AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 24.0, age)
	assert.True(t, frame.Value(1, "age").IsNull(), "empty cell is null")

	pos, _ := frame.Value(1, "primary_category").AsString()
	assert.Equal(t, "Striker", pos)
}

func TestReadCSV_ShortRowPaddedLongRowRejected(t *testing.T) {
	lib := testLibrary(t)

	frame, err := ReadCSV(strings.NewReader("name,age\nAda\n"), lib)
	require.NoError(t, err)
	assert.True(t, frame.Value(0, "age").IsNull())

	_, err = ReadCSV(strings.NewReader("name,age\nAda,24,extra\n"), lib)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestReadCSV_EmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), testLibrary(t))
	assert.Error(t, err)
}
