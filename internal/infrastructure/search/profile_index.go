package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
)

// ProfileIndex mirrors searchable profiles into an Elasticsearch index.
// Users that hide their profile are removed from the index.
type ProfileIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewProfileIndex(es *elasticsearch.Client, index string) *ProfileIndex {
	return &ProfileIndex{es: es, index: index}
}

type profileDocument struct {
	entity.PublicProfile
	ShowProfile bool      `json:"showProfile"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *ProfileIndex) Index(ctx context.Context, u *entity.User) error {
	if !u.Settings.ShowProfile {
		return p.remove(ctx, u.ID)
	}
	b, err := json.Marshal(profileDocument{PublicProfile: u.Public(), ShowProfile: true, UpdatedAt: u.UpdatedAt})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: p.index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(ctx, p.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return responseError("index", res)
	}
	return nil
}

func (p *ProfileIndex) remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: p.index, DocumentID: id}
	res, err := req.Do(ctx, p.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res)
	}
	return nil
}

// Search runs a multi_match over names, bio, topics and history, restricted to
// visible profiles. An empty query lists visible profiles.
func (p *ProfileIndex) Search(ctx context.Context, query string, size int) ([]entity.PublicProfile, error) {
	b, err := json.Marshal(buildQuery(query, size))
	if err != nil {
		return nil, err
	}
	res, err := p.es.Search(
		p.es.Search.WithContext(ctx),
		p.es.Search.WithIndex(p.index),
		p.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == http.StatusNotFound {
		// index not created yet
		return []entity.PublicProfile{}, nil
	}
	if res.IsError() {
		return nil, responseError("search", res)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string               `json:"_id"`
				Source entity.PublicProfile `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]entity.PublicProfile, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		if h.Source.ID == "" {
			h.Source.ID = h.ID
		}
		out = append(out, h.Source)
	}
	return out, nil
}

func buildQuery(query string, size int) map[string]any {
	must := map[string]any{"match_all": map[string]any{}}
	if query != "" {
		must = map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"firstName^3", "lastName^3", "bio", "interestedTopics^2", "companies", "colleges", "city", "country"},
				"fuzziness": "AUTO",
			},
		}
	}
	return map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": []any{map[string]any{"term": map[string]any{"showProfile": true}}},
			},
		},
	}
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return fmt.Errorf("elasticsearch %s: %s: %s", op, res.Status(), bytes.TrimSpace(body))
}
