package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awamegit/spotrm-api-go/internal/config"
	"github.com/awamegit/spotrm-api-go/internal/logger"
	"github.com/awamegit/spotrm-api-go/pkg/publishers"
)

const fakeSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="80"><path d="M0 0"/></svg>`

// fakeSpotRM serves canned responses keyed by "METHOD path".
type fakeSpotRM struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []string
}

type fakeResponse struct {
	status int
	body   string
}

func (f *fakeSpotRM) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api/v1")
	f.mu.Lock()
	f.calls = append(f.calls, key)
	resp, ok := f.responses[key]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"not found"}`)
		return
	}
	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}

func defaultResponses() map[string]fakeResponse {
	return map[string]fakeResponse{
		"GET /help":                             {200, `{"about":"SpotRM API v1"}`},
		"GET /get/drug/id/1":                    {200, `{"DrugName":"Aspirin"}`},
		"POST /search/drug/substructure/smiles": {200, `[{"DrugName":"Tolazamide"}]`},
		"POST /get/image/smiles":                {200, fakeSVG},
		"POST /tokens/":                         {200, `{"token":"abc123"}`},
		"POST /search/smarts/smiles":            {200, `[["12","Aniline"],["40","Dialkylaniline"]]`},
		"GET /get/drug/smarts_id/12":            {200, `{"7":{"DrugName":"Lidocaine"},"3":{"DrugName":"Bupivacaine"}}`},
	}
}

func newTestRunner(t *testing.T, fake *fakeSpotRM, mutate func(*config.Config)) (*Runner, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		BaseURL:                srv.URL + "/api/v1",
		Username:               "chemist@example.com",
		Password:               "pw",
		TokenScheme:            "bearer",
		OutputDir:              t.TempDir(),
		OutputFormat:           "json",
		HistoryType:            "none",
		HistoryTTL:             time.Hour,
		HistoryCleanupInterval: time.Hour,
	}
	if mutate != nil {
		mutate(cfg)
	}

	var out bytes.Buffer
	runner, err := NewRunner(context.Background(), cfg, logger.NopLogger{}, &out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = runner.Close() })
	return runner, &out
}

func TestRunBasicPrintsAllSections(t *testing.T) {
	fake := &fakeSpotRM{responses: defaultResponses()}
	runner, out := newTestRunner(t, fake, nil)

	require.NoError(t, runner.RunBasic(context.Background()))

	text := out.String()
	assert.Contains(t, text, "200\nabout: SpotRM API v1\n")
	assert.Contains(t, text, `{"DrugName":"Aspirin"}`)
	assert.Contains(t, text, "DrugName  =  Aspirin")
	assert.Contains(t, text, "JSON formatted results from SMILES search")
	assert.Contains(t, text, `"DrugName": "Tolazamide"`)
	assert.Equal(t, []string{"GET /help", "GET /get/drug/id/1", "POST /search/drug/substructure/smiles"}, fake.calls)
}

func TestRunBasicContinuesAfterFailure(t *testing.T) {
	responses := defaultResponses()
	responses["GET /get/drug/id/1"] = fakeResponse{500, `{"message":"database unavailable"}`}
	fake := &fakeSpotRM{responses: responses}
	runner, out := newTestRunner(t, fake, nil)

	err := runner.RunBasic(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStepFailed))
	assert.Contains(t, out.String(), "There was an error: database unavailable")
	assert.Contains(t, out.String(), "Tolazamide", "search must still run after a failed lookup")
	assert.Len(t, fake.calls, 3)
}

func TestRunImageSavesResponseBytes(t *testing.T) {
	fake := &fakeSpotRM{responses: defaultResponses()}
	runner, out := newTestRunner(t, fake, nil)
	runner.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local) }

	require.NoError(t, runner.RunImage(context.Background()))

	path := filepath.Join(runner.cfg.OutputDir, "smilesImage_2026-10-17.svg")
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fakeSVG, string(got))
	assert.Contains(t, out.String(), "Image saved to "+path)
}

func TestRunImageFailureWritesNothing(t *testing.T) {
	responses := defaultResponses()
	responses["POST /get/image/smiles"] = fakeResponse{400, `{"message":"unknown smarts_id"}`}
	runner, out := newTestRunner(t, &fakeSpotRM{responses: responses}, nil)

	err := runner.RunImage(context.Background())
	require.ErrorIs(t, err, ErrStepFailed)
	assert.Equal(t, "There was an error: unknown smarts_id\n", out.String())

	entries, err := os.ReadDir(runner.cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunTokenListsAlertsAndDrugs(t *testing.T) {
	fake := &fakeSpotRM{responses: defaultResponses()}
	runner, out := newTestRunner(t, fake, nil)

	require.NoError(t, runner.RunToken(context.Background()))

	text := out.String()
	assert.Contains(t, text, `Alert ID: 12 is "Aniline"`)
	assert.Contains(t, text, `Alert ID: 40 is "Dialkylaniline"`)
	assert.Contains(t, text, "Bupivacaine\nLidocaine\n")
	assert.Equal(t, []string{"POST /tokens/", "POST /search/smarts/smiles", "GET /get/drug/smarts_id/12"}, fake.calls)
}

func TestRunTokenStopsWhenTokenRefused(t *testing.T) {
	responses := defaultResponses()
	responses["POST /tokens/"] = fakeResponse{401, `{"message":"Unauthorized access"}`}
	fake := &fakeSpotRM{responses: responses}
	runner, out := newTestRunner(t, fake, nil)

	err := runner.RunToken(context.Background())
	require.ErrorIs(t, err, ErrStepFailed)
	assert.Equal(t, "There was an error: Unauthorized access\n", out.String())
	assert.Equal(t, []string{"POST /tokens/"}, fake.calls)
}

func TestRunTokenNoAlerts(t *testing.T) {
	responses := defaultResponses()
	responses["POST /search/smarts/smiles"] = fakeResponse{200, `[]`}
	fake := &fakeSpotRM{responses: responses}
	runner, _ := newTestRunner(t, fake, nil)

	require.NoError(t, runner.RunToken(context.Background()))
	assert.Len(t, fake.calls, 2)
}

func TestRunTokenPublishesReport(t *testing.T) {
	var (
		mu       sync.Mutex
		received []publishers.Event
	)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var evt publishers.Event
		if err := json.NewDecoder(r.Body).Decode(&evt); err == nil {
			mu.Lock()
			received = append(received, evt)
			mu.Unlock()
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer hook.Close()

	pubFile := filepath.Join(t.TempDir(), "publishers.yaml")
	require.NoError(t, os.WriteFile(pubFile, []byte("publishers:\n  - id: hook\n    type: http\n    http:\n      url: "+hook.URL+"\n"), 0o644))

	fake := &fakeSpotRM{responses: defaultResponses()}
	runner, _ := newTestRunner(t, fake, func(c *config.Config) { c.PublishersFile = pubFile })

	require.NoError(t, runner.RunToken(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, SampleAlertSMILES, received[0].SMILES)
	assert.Len(t, received[0].Alerts, 2)
	assert.Equal(t, []string{"Bupivacaine", "Lidocaine"}, received[0].DrugsByAlert["12"])
}

func TestRunnerRecordsHistory(t *testing.T) {
	fake := &fakeSpotRM{responses: defaultResponses()}
	dbPath := filepath.Join(t.TempDir(), "history.db")
	runner, _ := newTestRunner(t, fake, func(c *config.Config) {
		c.HistoryType = "bbolt"
		c.HistoryPath = dbPath
	})

	require.NoError(t, runner.RunToken(context.Background()))

	recent, err := runner.history.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "/get/drug/smarts_id/12", recent[0].Path)
	assert.Equal(t, "token", recent[0].Credential)
	assert.Equal(t, "/tokens/", recent[2].Path)
	assert.Equal(t, "basic", recent[2].Credential)
}

func TestRunBasicTransportErrorAborts(t *testing.T) {
	fake := &fakeSpotRM{responses: defaultResponses()}
	runner, _ := newTestRunner(t, fake, func(c *config.Config) { c.BaseURL = "http://127.0.0.1:1/api/v1" })

	err := runner.RunBasic(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrStepFailed))
	assert.Empty(t, fake.calls)
}

func TestNewRunnerRejectsNilConfig(t *testing.T) {
	_, err := NewRunner(context.Background(), nil, nil, nil)
	assert.Error(t, err)
}
