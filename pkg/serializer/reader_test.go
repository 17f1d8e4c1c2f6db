package serializer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewReaderRejectsTable(t *testing.T) {
	_, err := NewReader(FormatTable, strings.NewReader(""))
	assert.Error(t, err)

	_, err = NewReader(Format("xml"), strings.NewReader(""))
	assert.Error(t, err)
}

func TestReaderDeserialize(t *testing.T) {
	r, err := NewReader(FormatJSON, strings.NewReader(`{"name":"a","count":3}`))
	require.NoError(t, err)
	var got sample
	require.NoError(t, r.Deserialize(&got))
	assert.Equal(t, 3, got.Count)
	assert.NoError(t, r.Close())

	r, err = NewReader(FormatYAML, strings.NewReader("name: b\nitems: [x, y]\n"))
	require.NoError(t, err)
	require.NoError(t, r.Deserialize(&got))
	assert.Equal(t, "b", got.Name)
	assert.Equal(t, []string{"x", "y"}, got.Items)

	r, err = NewReader(FormatJSON, strings.NewReader(`{bad`))
	require.NoError(t, err)
	assert.Error(t, r.Deserialize(&got))
}

func TestFromFile(t *testing.T) {
	ctx := context.Background()

	got, err := FromFile[sample](ctx, writeTemp(t, "s.yaml", "name: y\ncount: 7\n"))
	require.NoError(t, err)
	assert.Equal(t, 7, got.Count)

	got, err = FromFile[sample](ctx, writeTemp(t, "s.json", `{"name":"j"}`))
	require.NoError(t, err)
	assert.Equal(t, "j", got.Name)

	_, err = FromFile[sample](ctx, filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)

	_, err = FromFile[sample](ctx, writeTemp(t, "s.txt", "x"))
	assert.Error(t, err)
}

func TestReadSource(t *testing.T) {
	ctx := context.Background()

	data, err := ReadSource(ctx, writeTemp(t, "a.json", `{"a":1}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	_, err = ReadSource(ctx, "  ")
	assert.Error(t, err)

	_, err = ReadSource(ctx, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestToJSON(t *testing.T) {
	out, err := ToJSON(FormatYAML, []byte("class: Fry\nenergy_sources: [Maize, Wheat]\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"class":"Fry","energy_sources":["Maize","Wheat"]}`, string(out))

	out, err = ToJSON(FormatJSON, []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.True(t, json.Valid(out))

	_, err = ToJSON(FormatJSON, []byte(`{`))
	assert.Error(t, err)

	_, err = ToJSON(FormatYAML, []byte("a: [b"))
	assert.Error(t, err)

	_, err = ToJSON(FormatTable, nil)
	assert.Error(t, err)
}
