package search

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/eco_shop/internal/domain"
)

func TestBuildQuery(t *testing.T) {
	q := buildQuery("bamboo", 10, 5)

	raw, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"query": {"multi_match": {"query": "bamboo", "fields": ["name^2", "description"], "fuzziness": "AUTO"}},
		"from": 10,
		"size": 5
	}`, string(raw))
}

func TestBulkBody(t *testing.T) {
	body, err := bulkBody("items", domain.ItemList{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 4)
	assert.JSONEq(t, `{"index":{"_index":"items","_id":"1"}}`, lines[0])
	assert.Contains(t, lines[3], `"name":"B"`)
}

func TestDecodeHits(t *testing.T) {
	total, items, err := decodeHits(strings.NewReader(`{
		"hits": {
			"total": {"value": 2},
			"hits": [
				{"_source": {"id": 3, "name": "Cotton Tote", "price": 500}},
				{"_source": {"id": 1, "name": "Bamboo Toothbrush", "price": 300}}
			]
		}
	}`))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []domain.ItemID{3, 1}, items.IDs())
	assert.Equal(t, domain.Money(500), items[0].Price)
}

type fakeES struct {
	mu       sync.Mutex
	bulk     []string
	searched []byte
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/":
		io.WriteString(w, `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
	case strings.HasSuffix(r.URL.Path, "/_bulk"):
		sc := bufio.NewScanner(r.Body)
		for sc.Scan() {
			f.bulk = append(f.bulk, sc.Text())
		}
		io.WriteString(w, `{"errors":false,"items":[]}`)
	case strings.HasSuffix(r.URL.Path, "/_search"):
		f.searched, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"hits":{"total":{"value":1},"hits":[{"_source":{"id":2,"name":"Steel Bottle"}}]}}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{}`)
	}
}

func TestClient_AgainstFakeCluster(t *testing.T) {
	fake := &fakeES{}
	srv := httptest.NewServer(fake)
	defer srv.Close()
	ctx := context.Background()

	c, err := NewClient(ctx, Config{URL: srv.URL})
	require.NoError(t, err)

	require.NoError(t, c.IndexItems(ctx, domain.ItemList{{ID: 2, Name: "Steel Bottle"}}))
	assert.Len(t, fake.bulk, 2)

	total, items, err := c.Search(ctx, "bottle", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Steel Bottle", items[0].Name)
	assert.True(t, bytes.Contains(fake.searched, []byte(`"bottle"`)))
}
