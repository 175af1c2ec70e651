package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   []byte
}

// fakeES answers like an Elasticsearch node and records every request.
func fakeES(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*ProfileIndex, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path, body: body})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewProfileIndex(es, "profiles"), &reqs
}

func visibleUser() *entity.User {
	return &entity.User{
		ID: "u1", FirstName: "Jane", LastName: "Doe", Bio: "gopher",
		InterestedTopics: []string{"go"},
		WorkExperience:   []entity.WorkExperience{{Company: "Acme"}},
		Settings:         entity.DefaultSettings(),
	}
}

func TestProfileIndex_IndexVisibleProfile(t *testing.T) {
	idx, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	require.NoError(t, idx.Index(context.Background(), visibleUser()))

	require.Len(t, *reqs, 1)
	req := (*reqs)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/profiles/_doc/u1", req.path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(req.body, &doc))
	assert.Equal(t, "Jane", doc["firstName"])
	assert.Equal(t, true, doc["showProfile"])
	assert.Equal(t, []any{"Acme"}, doc["companies"])
	assert.NotContains(t, doc, "email")
}

func TestProfileIndex_HiddenProfileIsRemoved(t *testing.T) {
	idx, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})

	u := visibleUser()
	u.Settings.ShowProfile = false
	require.NoError(t, idx.Index(context.Background(), u))

	require.Len(t, *reqs, 1)
	assert.Equal(t, http.MethodDelete, (*reqs)[0].method)
	assert.Equal(t, "/profiles/_doc/u1", (*reqs)[0].path)
}

func TestProfileIndex_IndexError(t *testing.T) {
	idx, _ := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"mapper_parsing_exception"}`))
	})

	err := idx.Index(context.Background(), visibleUser())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapper_parsing_exception")
}

func TestProfileIndex_Search(t *testing.T) {
	idx, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_id":"u1","_source":{"id":"u1","firstName":"Jane","lastName":"Doe"}},
			{"_id":"u2","_source":{"firstName":"John"}}
		]}}`))
	})

	out, err := idx.Search(context.Background(), "jane", 5)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Jane", out[0].FirstName)
	assert.Equal(t, "u2", out[1].ID)

	require.Len(t, *reqs, 1)
	assert.Equal(t, "/profiles/_search", (*reqs)[0].path)

	var body map[string]any
	require.NoError(t, json.Unmarshal((*reqs)[0].body, &body))
	assert.EqualValues(t, 5, body["size"])
	assert.Contains(t, string((*reqs)[0].body), `"showProfile":true`)
	assert.Contains(t, string((*reqs)[0].body), `"multi_match"`)
}

func TestProfileIndex_SearchMissingIndex(t *testing.T) {
	idx, _ := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception"}}`))
	})

	out, err := idx.Search(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBuildQuery_EmptyQueryListsVisibleProfiles(t *testing.T) {
	q := buildQuery("", 10)
	b, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"match_all"`)
	assert.NotContains(t, string(b), `"multi_match"`)
}
