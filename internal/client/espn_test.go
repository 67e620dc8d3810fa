package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"nfl_dashboard/service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	path  string
	query string
}

// fakeESPN serves canned responses in order and records every request
type fakeESPN struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses []func(w http.ResponseWriter)
}

func (f *fakeESPN) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{path: r.URL.Path, query: r.URL.RawQuery})
	idx := len(f.requests) - 1
	f.mu.Unlock()

	if idx >= len(f.responses) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	f.responses[idx](w)
}

func respond(status int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func newTestClient(t *testing.T, f *fakeESPN) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL + "/nfl", Timeout: 5 * time.Second})
}

var week3 = models.ScheduleQuery{Year: 2025, Week: 3, SeasonType: models.RegularSeason}

func TestFetchWeekScoreboard_FirstVariantWins(t *testing.T) {
	f := &fakeESPN{responses: []func(http.ResponseWriter){
		respond(http.StatusOK, `{"events": [{"id": "1"}]}`),
	}}
	c := newTestClient(t, f)

	payload, err := c.FetchWeekScoreboard(context.Background(), week3)
	require.NoError(t, err)
	assert.Len(t, payload["events"], 1)

	require.Len(t, f.requests, 1)
	assert.Equal(t, "/nfl/scoreboard", f.requests[0].path)
	assert.Equal(t, "dates=2025&seasontype=2&week=3", f.requests[0].query)
}

func TestFetchWeekScoreboard_FallsBackOnServerError(t *testing.T) {
	f := &fakeESPN{responses: []func(http.ResponseWriter){
		respond(http.StatusInternalServerError, `oops`),
		respond(http.StatusOK, `{"events": []}`),
	}}
	c := newTestClient(t, f)

	payload, err := c.FetchWeekScoreboard(context.Background(), week3)
	require.NoError(t, err)
	assert.NotNil(t, payload)

	require.Len(t, f.requests, 2)
	assert.Equal(t, "seasontype=2&week=3", f.requests[1].query, "second variant drops the year")
}

func TestFetchWeekScoreboard_FallsBackOnUnparseableBody(t *testing.T) {
	f := &fakeESPN{responses: []func(http.ResponseWriter){
		respond(http.StatusOK, `<html>maintenance</html>`),
		respond(http.StatusOK, `{"events": []}`),
	}}
	c := newTestClient(t, f)

	_, err := c.FetchWeekScoreboard(context.Background(), week3)
	require.NoError(t, err)
	assert.Len(t, f.requests, 2)
}

func TestFetchWeekScoreboard_BothVariantsFail(t *testing.T) {
	f := &fakeESPN{responses: []func(http.ResponseWriter){
		respond(http.StatusInternalServerError, `oops`),
		respond(http.StatusBadGateway, `oops`),
	}}
	c := newTestClient(t, f)

	payload, err := c.FetchWeekScoreboard(context.Background(), week3)
	require.Error(t, err)
	assert.Nil(t, payload)
	assert.Len(t, f.requests, 2)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode, "last failure is reported")
}

func TestFetchWeekScoreboard_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(Options{BaseURL: srv.URL, Timeout: time.Second})

	_, err := c.FetchWeekScoreboard(context.Background(), week3)
	assert.Error(t, err)
}

func TestFetchSummary_ReturnsStatusError(t *testing.T) {
	f := &fakeESPN{responses: []func(http.ResponseWriter){
		respond(http.StatusNotFound, `{"code": 404}`),
	}}
	c := newTestClient(t, f)

	payload, err := c.FetchSummary(context.Background(), "401671789")
	require.Error(t, err)
	assert.Nil(t, payload)
	assert.Contains(t, err.Error(), "404")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)

	require.Len(t, f.requests, 1, "summary is never retried")
	assert.Equal(t, "/nfl/summary", f.requests[0].path)
	assert.Equal(t, "event=401671789", f.requests[0].query)
}

func TestFetchSummary_Success(t *testing.T) {
	f := &fakeESPN{responses: []func(http.ResponseWriter){
		respond(http.StatusOK, `{"leaders": [], "injuries": []}`),
	}}
	c := newTestClient(t, f)

	payload, err := c.FetchSummary(context.Background(), "401671789")
	require.NoError(t, err)
	assert.Contains(t, payload, "leaders")
}

func TestFetchScoreboard_NoParameters(t *testing.T) {
	f := &fakeESPN{responses: []func(http.ResponseWriter){
		respond(http.StatusOK, `{"week": {"number": 6}, "season": {"type": 2}}`),
	}}
	c := newTestClient(t, f)

	_, err := c.FetchScoreboard(context.Background())
	require.NoError(t, err)
	require.Len(t, f.requests, 1)
	assert.Equal(t, "", f.requests[0].query)
}

func TestGet_CancelledContext(t *testing.T) {
	f := &fakeESPN{}
	c := newTestClient(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchSummary(ctx, "1")
	assert.Error(t, err)
}

func TestScoreboardURLs(t *testing.T) {
	variants := ScoreboardURLs(models.ScheduleQuery{Year: 2024, Week: 1, SeasonType: models.Postseason})
	require.Len(t, variants, 2)
	assert.Equal(t, "dates=2024&seasontype=3&week=1", variants[0].Encode())
	assert.Equal(t, "seasontype=3&week=1", variants[1].Encode())
}
