package feedback

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEncodeJSONL(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{PairID: 1, EN: "I wish I could fly.", KO: "날고 싶다.",
			Paths: []string{"특수 구문 > 가정법 구문 > I wish 가정법"}, CreatedAt: at},
		{PairID: 2, EN: "He said that.", Paths: []string{"절(Clause) > 명사절 > that절"},
			Embedding: []float64{0.1, 0.2}, EmbeddingModel: "text-embedding-3-small", CreatedAt: at},
	}

	data, err := encodeJSONL(entries)
	require.NoError(t, err)

	out := string(data)
	require.True(t, strings.HasSuffix(out, "\n"), "JSONL must end with a newline")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	for i, line := range lines {
		var got Entry
		require.NoError(t, json.Unmarshal([]byte(line), &got), "line %d", i)
		require.Equal(t, entries[i].PairID, got.PairID)
		require.Equal(t, entries[i].EN, got.EN)
		require.Equal(t, entries[i].Paths, got.Paths)
	}

	var second Entry
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	require.Equal(t, []float64{0.1, 0.2}, second.Embedding)
	require.Equal(t, "text-embedding-3-small", second.EmbeddingModel)
}

func TestEncodeJSONL_Empty(t *testing.T) {
	data, err := encodeJSONL(nil)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestNewExporter_Validation(t *testing.T) {
	base := S3Config{
		Endpoint:  "localhost:9000",
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "feedback",
	}

	e, err := NewExporter(base)
	require.NoError(t, err)
	require.NotNil(t, e)

	missing := []struct {
		name string
		mod  func(c *S3Config)
	}{
		{"endpoint", func(c *S3Config) { c.Endpoint = "" }},
		{"access key", func(c *S3Config) { c.AccessKey = "" }},
		{"secret key", func(c *S3Config) { c.SecretKey = "" }},
		{"bucket", func(c *S3Config) { c.Bucket = "" }},
	}
	for _, tc := range missing {
		cfg := base
		tc.mod(&cfg)
		_, err := NewExporter(cfg)
		require.Error(t, err, "missing %s should fail", tc.name)
	}
}
