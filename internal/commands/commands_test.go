package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacia-portal/internal/models"
)

func TestLoadDraftYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Cottage
address: Main St
eircode: T12 AB34
description: Quiet
postalCode: Cork
rent: 1200
availableFrom: "2030-01-01"
energyRatings: A1
bedrooms: 2
amenities: [Parking, Garden]
propertyType: House
`), 0o600))

	draft, err := LoadDraft(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Cottage", draft.Name)
	assert.Equal(t, 1200.0, draft.Rent)
	assert.Equal(t, 2, draft.Bedrooms)
	assert.Equal(t, []string{"Parking", "Garden"}, draft.Amenities)
}

func TestLoadDraftStdinJSON(t *testing.T) {
	draft, err := LoadDraft("-", strings.NewReader(`{"name":"Loft","rent":900}`))
	require.NoError(t, err)
	assert.Equal(t, "Loft", draft.Name)
	assert.Equal(t, 900.0, draft.Rent)
}

func TestLoadDraftRejectsUnknownFields(t *testing.T) {
	_, err := LoadDraft("-", strings.NewReader("name: Loft\nprice: 10\n"))
	assert.ErrorContains(t, err, "failed to parse draft")

	_, err = LoadDraft("-", strings.NewReader(""))
	assert.ErrorContains(t, err, "empty")
}

func TestWriteDraftRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	in := models.PropertyDraft{Name: "Loft", Amenities: []string{"Lift"}, Images: []string{}}
	require.NoError(t, WriteDraft(&buf, in))

	out, err := LoadDraft("-", &buf)
	require.NoError(t, err)
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.Amenities, out.Amenities)
}

type recordingAPI struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingAPI) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.calls = append(r.calls, req.Method+" "+req.URL.Path+" "+req.Header.Get("Authorization"))
	r.mu.Unlock()

	switch {
	case req.URL.Path == "/api/v1/auth/login":
		_, _ = w.Write([]byte(`{"token":"tok"}`))
	case req.URL.Path == "/api/v1/property" && req.Method == http.MethodGet:
		_, _ = w.Write([]byte(`[
			{"id":"1","name":"Flat","postalCode":"D02","propertyType":"Apartment","description":"Bright"},
			{"id":"2","name":"Cottage","postalCode":"T12","propertyType":"House"}
		]`))
	case strings.HasPrefix(req.URL.Path, "/api/v1/property/contact/"):
		_, _ = w.Write([]byte(`{"status":"Success"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (r *recordingAPI) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func run(t *testing.T, sessionFile string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"--session-file", sessionFile,
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func newAPI(t *testing.T) *recordingAPI {
	api := &recordingAPI{}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)
	t.Setenv("SPACIA_API_URL", server.URL)
	t.Setenv("SPACIA_API_VERSION", "api/v1")
	return api
}

func TestListCommandFilters(t *testing.T) {
	newAPI(t)
	out, err := run(t, filepath.Join(t.TempDir(), "s.json"), "properties", "list", "--type", "house")
	require.NoError(t, err)
	assert.Contains(t, out, "Cottage")
	assert.NotContains(t, out, "Flat")
}

func TestShowCommandUsesListedRecord(t *testing.T) {
	newAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "s.json")

	out, err := run(t, sessionFile, "properties", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Bright")

	_, err = run(t, sessionFile, "properties", "show", "99")
	assert.Error(t, err)
}

func TestLoginThenContact(t *testing.T) {
	api := newAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "s.json")

	_, err := run(t, sessionFile, "properties", "contact", "2")
	assert.ErrorContains(t, err, "log in")

	out, err := run(t, sessionFile, "login", "-u", "sam", "-p", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as sam")

	_, err = run(t, sessionFile, "properties", "contact", "2")
	require.NoError(t, err)
	assert.Contains(t, api.Calls(), "POST /api/v1/property/contact/2 Bearer tok")

	_, err = run(t, sessionFile, "logout")
	require.NoError(t, err)
	out, err = run(t, sessionFile, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}
