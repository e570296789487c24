package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlescienceai/littlesci/pkg/types"
)

const sampleAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v1</id>
    <title>Exercise  Intensity and
 Fat Oxidation</title>
    <summary>We study fat oxidation rates under varying exercise intensity.</summary>
    <link href="http://arxiv.org/abs/2301.07041v1" rel="alternate" type="text/html"/>
    <link href="http://arxiv.org/pdf/2301.07041v1" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2302.00001v2</id>
    <title>Body Composition Tracking in Adolescents</title>
    <summary>A longitudinal study of body composition.</summary>
  </entry>
</feed>`

const emptyAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"></feed>`

func atomServer(t *testing.T, body string, gotQuery *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotQuery != nil {
			*gotQuery = r.URL.RawQuery
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, body)
	}))
}

func withEndpoint(t *testing.T, url string) {
	t.Helper()
	orig := arxivAPIBase
	arxivAPIBase = url
	t.Cleanup(func() { arxivAPIBase = orig })
}

func TestFeedSearchNormalizesEntries(t *testing.T) {
	var gotQuery string
	ts := atomServer(t, sampleAtom, &gotQuery)
	defer ts.Close()
	withEndpoint(t, ts.URL)

	r := NewFeedRetriever(ts.Client(), nil, types.RetrievalConfig{MaxResults: 5})
	records := r.Search(context.Background(), "운동과 체지방 감량")

	require.Len(t, records, 2)
	assert.Equal(t, "Exercise Intensity and Fat Oxidation", records[0].Title,
		"title whitespace must be collapsed")
	assert.Equal(t, "http://arxiv.org/abs/2301.07041v1", records[0].Link)
	assert.Equal(t, "arXiv", records[0].Source)
	assert.Equal(t, "We study fat oxidation rates under varying exercise intensity.", records[0].Summary)
	// No alternate link on the second entry: fall back to the entry ID.
	assert.Equal(t, "http://arxiv.org/abs/2302.00001v2", records[1].Link)

	// The raw query, not the mapped term bag, must be sent URL-escaped.
	assert.Contains(t, gotQuery, "search_query=all%3A")
	assert.Contains(t, gotQuery, "max_results=5")
}

func TestFeedSearchEmptyFeedSentinel(t *testing.T) {
	ts := atomServer(t, emptyAtom, nil)
	defer ts.Close()
	withEndpoint(t, ts.URL)

	r := NewFeedRetriever(ts.Client(), nil, types.RetrievalConfig{})
	records := r.Search(context.Background(), "희귀한 주제")

	require.Len(t, records, 1)
	assert.Equal(t, SentinelEmpty, records[0].Title)
	assert.Contains(t, records[0].Summary, "희귀한 주제")
	assert.Empty(t, records[0].Link)
}

func TestFeedSearchNetworkFailureSentinel(t *testing.T) {
	withEndpoint(t, "http://127.0.0.1:0")

	r := NewFeedRetriever(nil, nil, types.RetrievalConfig{})
	records := r.Search(context.Background(), "운동")

	require.Len(t, records, 1)
	assert.Equal(t, SentinelFailure, records[0].Title)
	assert.Empty(t, records[0].Summary)
	assert.Empty(t, records[0].Link)
	assert.Equal(t, "arXiv", records[0].Source)
}

func TestFeedSearchHTTPErrorSentinel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer ts.Close()
	withEndpoint(t, ts.URL)

	r := NewFeedRetriever(ts.Client(), nil, types.RetrievalConfig{})
	records := r.Search(context.Background(), "운동")

	require.Len(t, records, 1)
	assert.Equal(t, SentinelFailure, records[0].Title)
}

func TestFeedSearchMalformedXMLSentinel(t *testing.T) {
	ts := atomServer(t, "<feed><entry><title>oops", nil)
	defer ts.Close()
	withEndpoint(t, ts.URL)

	r := NewFeedRetriever(ts.Client(), nil, types.RetrievalConfig{})
	records := r.Search(context.Background(), "운동")

	require.Len(t, records, 1)
	assert.Equal(t, SentinelFailure, records[0].Title)
}

func TestFeedSearchGlossReplacesSummary(t *testing.T) {
	ts := atomServer(t, sampleAtom, nil)
	defer ts.Close()
	withEndpoint(t, ts.URL)

	g := &stubGlosser{gloss: "운동 강도에 따른 지방 연소를 다룬 논문으로 추정됩니다."}
	r := NewFeedRetriever(ts.Client(), g, types.RetrievalConfig{})
	records := r.Search(context.Background(), "운동")

	require.NotEmpty(t, records)
	assert.Equal(t, g.gloss, records[0].Summary)
	assert.True(t, strings.HasPrefix(g.calls[0], "Exercise"), "gloss keyed on the entry title")
}

func TestFeedSearchEmptyQuerySentinel(t *testing.T) {
	r := NewFeedRetriever(nil, nil, types.RetrievalConfig{})
	records := r.Search(context.Background(), "  ")

	require.Len(t, records, 1)
	assert.Equal(t, SentinelEmpty, records[0].Title)
}
