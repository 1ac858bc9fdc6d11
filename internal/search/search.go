package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/logging"
)

const DefaultIndex = "items"

type Config struct {
	URL      string
	User     string
	Password string
	Index    string
}

// Client mirrors the catalog into an Elasticsearch index and runs
// full-text queries against it.
type Client struct {
	es    *elasticsearch.Client
	index string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	l := logging.FromContext(ctx).With("svc", "search")
	l.Info("es_connecting", "url", cfg.URL, "user", cfg.User)

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := es.Info(es.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error %s: %s", res.Status(), body)
	}

	index := cfg.Index
	if index == "" {
		index = DefaultIndex
	}
	l.Info("es_connected", "index", index)
	return &Client{es: es, index: index}, nil
}

// IndexItems upserts items by ID with one bulk request.
func (c *Client) IndexItems(ctx context.Context, items domain.ItemList) error {
	if len(items) == 0 {
		return nil
	}
	body, err := bulkBody(c.index, items)
	if err != nil {
		return err
	}

	res, err := c.es.Bulk(bytes.NewReader(body),
		c.es.Bulk.WithContext(ctx),
		c.es.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk index: %s", res.Status())
	}

	var r struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if r.Errors {
		return fmt.Errorf("bulk index: some items were rejected")
	}
	return nil
}

func (c *Client) Search(ctx context.Context, query string, from, size int) (int64, domain.ItemList, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(query, from, size)); err != nil {
		return 0, nil, fmt.Errorf("encode search: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}
	return decodeHits(res.Body)
}

func buildQuery(query string, from, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}
}

func bulkBody(index string, items domain.ItemList) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for it := range items.All() {
		meta := map[string]any{"index": map[string]any{"_index": index, "_id": strconv.FormatUint(uint64(it.ID), 10)}}
		if err := enc.Encode(meta); err != nil {
			return nil, err
		}
		if err := enc.Encode(it); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func decodeHits(r io.Reader) (int64, domain.ItemList, error) {
	var body struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source domain.Item `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	items := make(domain.ItemList, len(body.Hits.Hits))
	for i, hit := range body.Hits.Hits {
		items[i] = hit.Source
	}
	return body.Hits.Total.Value, items, nil
}
