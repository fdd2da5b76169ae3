package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oratio-tech/competitor-cli/internal/model"
	"github.com/oratio-tech/competitor-cli/internal/store"
)

// fakeStore serves fixed collections; nil slices report ErrNotFound.
type fakeStore struct {
	candidates []model.Candidate
	profiles   []model.Profile
}

func (f *fakeStore) LoadCandidates(context.Context) ([]model.Candidate, error) {
	if f.candidates == nil {
		return nil, store.ErrNotFound
	}
	return f.candidates, nil
}

func (f *fakeStore) SaveCandidates(_ context.Context, c []model.Candidate) error {
	f.candidates = c
	return nil
}

func (f *fakeStore) LoadProfiles(context.Context) ([]model.Profile, error) {
	if f.profiles == nil {
		return nil, store.ErrNotFound
	}
	return f.profiles, nil
}

func (f *fakeStore) SaveProfiles(_ context.Context, p []model.Profile) error {
	f.profiles = p
	return nil
}

func (f *fakeStore) Migrate(context.Context) error { return nil }
func (f *fakeStore) Close() error                  { return nil }

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServeHealth(t *testing.T) {
	rec := get(t, newRouter(&fakeStore{}), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServeProfiles(t *testing.T) {
	st := &fakeStore{profiles: []model.Profile{
		{Competitor: "Harvey AI", Website: "https://harvey.ai"},
		{Competitor: "DoNotPay"},
	}}
	rec := get(t, newRouter(st), "/api/profiles")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []model.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Harvey AI", got[0].Competitor)
}

func TestServeProfileByNormalizedName(t *testing.T) {
	st := &fakeStore{profiles: []model.Profile{
		{Competitor: "Harvey AI"},
	}}

	rec := get(t, newRouter(st), "/api/profiles/harvey-ai")
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Harvey AI", got.Competitor)

	rec = get(t, newRouter(st), "/api/profiles/unknown-co")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeEmptyStoreIsNotFound(t *testing.T) {
	rec := get(t, newRouter(&fakeStore{}), "/api/candidates")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, newRouter(&fakeStore{}), "/api/profiles")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
