package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"valuelife/internal/adapters/httpapi"
	"valuelife/internal/application"
	"valuelife/internal/infrastructure/memory"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	svc := application.NewNetworkService(application.Config{
		DirectBonus: 500,
		PairBonus:   1000,
		Events:      memory.NewEventLog(),
	})
	_, err := svc.Bootstrap(context.Background(), "Root")
	require.NoError(t, err)
	return httpapi.New(svc).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)
	rec, body := doJSON(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", body["status"])
}

func TestAddParticipant(t *testing.T) {
	h := newTestServer(t)

	rec, body := doJSON(t, h, http.MethodPost, "/v1/participants",
		map[string]any{"sponsor_id": 1, "name": "Alice"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, float64(2), body["id"])
	require.Equal(t, "Alice", body["name"])
	require.Equal(t, float64(1), body["sponsor_id"])
	require.Equal(t, "left", body["side"])
	require.Equal(t, false, body["active"])
}

func TestAddParticipantUnknownSponsor(t *testing.T) {
	h := newTestServer(t)

	rec, body := doJSON(t, h, http.MethodPost, "/v1/participants",
		map[string]any{"sponsor_id": 99, "name": "Alice"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	errObj := body["error"].(map[string]any)
	require.Equal(t, "sponsor_not_found", errObj["code"])
}

func TestAddParticipantEmptyName(t *testing.T) {
	h := newTestServer(t)

	rec, body := doJSON(t, h, http.MethodPost, "/v1/participants",
		map[string]any{"sponsor_id": 1, "name": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errObj := body["error"].(map[string]any)
	require.Equal(t, "empty_name", errObj["code"])
}

func TestActivateFlow(t *testing.T) {
	h := newTestServer(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/v1/participants",
		map[string]any{"sponsor_id": 1, "name": "Alice"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := doJSON(t, h, http.MethodPost, "/v1/participants/2/activate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, body["changed"])
	require.NotEmpty(t, body["events"])

	// Second activation: benign no-op, still 200 but changed=false.
	rec, body = doJSON(t, h, http.MethodPost, "/v1/participants/2/activate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, body["changed"])
	require.Empty(t, body["events"])
}

func TestActivateUnknownParticipant(t *testing.T) {
	h := newTestServer(t)

	rec, body := doJSON(t, h, http.MethodPost, "/v1/participants/99/activate", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	errObj := body["error"].(map[string]any)
	require.Equal(t, "participant_not_found", errObj["code"])
}

func TestGetParticipantAndBadID(t *testing.T) {
	h := newTestServer(t)

	rec, body := doJSON(t, h, http.MethodGet, "/v1/participants/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Root", body["name"])

	rec, body = doJSON(t, h, http.MethodGet, "/v1/participants/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errObj := body["error"].(map[string]any)
	require.Equal(t, "invalid_id", errObj["code"])
}

func TestTreeAndStats(t *testing.T) {
	h := newTestServer(t)

	for _, name := range []string{"B", "C"} {
		rec, _ := doJSON(t, h, http.MethodPost, "/v1/participants",
			map[string]any{"sponsor_id": 1, "name": name})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	for _, id := range []string{"2", "3"} {
		rec, _ := doJSON(t, h, http.MethodPost, "/v1/participants/"+id+"/activate", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, body := doJSON(t, h, http.MethodGet, "/v1/tree", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	root := body["root"].(map[string]any)
	left := root["left"].(map[string]any)["participant"].(map[string]any)
	require.Equal(t, "B", left["name"])

	rec, body = doJSON(t, h, http.MethodGet, "/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(3), body["participants"])
	require.Equal(t, float64(3), body["active"])
	require.Equal(t, float64(1), body["pairs_formed"])
	require.Equal(t, float64(1000), body["direct_paid"])
	require.Equal(t, float64(1000), body["pair_paid"])
}

func TestListEvents(t *testing.T) {
	h := newTestServer(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/v1/participants",
		map[string]any{"sponsor_id": 1, "name": "Alice"})
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
	out := httptest.NewRecorder()
	h.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code)

	var events []map[string]any
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &events))
	require.NotEmpty(t, events)
	require.Equal(t, "root", events[0]["kind"])
	require.Equal(t, "Alice added under Root on left", events[1]["message"])
}
