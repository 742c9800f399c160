package submission

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/form"
	"spacia-portal/internal/models"
	"spacia-portal/internal/upload"
	"spacia-portal/pkg/spacia"
)

var master = models.MasterData{
	Amenities:     []string{"Parking"},
	PropertyType:  []string{"Apartment"},
	EnergyRatings: []string{"B1"},
	Locations:     []string{"Dublin 2"},
}

func filledModel() *form.Model {
	return form.NewAddModel(master).
		SetField(form.FieldName, "Harbour View").
		SetField(form.FieldAddress, "1 Quay St").
		SetField(form.FieldEircode, "D02XY45").
		SetField(form.FieldDescription, "Bright").
		SetField(form.FieldPostalCode, "Dublin 2").
		SetField(form.FieldRent, "2100").
		SetField(form.FieldAvailableFrom, time.Now().AddDate(0, 1, 0).Format(models.DateLayout)).
		SetField(form.FieldEnergyRatings, "B1").
		SetField(form.FieldPropertyType, "Apartment").
		ToggleAmenity("Parking")
}

func pending(names ...string) []models.PendingFile {
	out := make([]models.PendingFile, 0, len(names))
	for _, n := range names {
		name := n
		out = append(out, models.PendingFile{
			ID:          "id-" + name,
			Name:        name,
			ContentType: "image/jpeg",
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader("bytes-of-" + name)), nil
			},
		})
	}
	return out
}

type fakeAPI struct {
	mu          sync.Mutex
	requests    []string
	imageNames  []string
	createBody  map[string]json.RawMessage
	createReply string
	failImage   string
	failUpdate  bool
}

func (f *fakeAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/property":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&f.createBody))
			reply := f.createReply
			if reply == "" {
				reply = `{"status":"Success","creationId":"new-1"}`
			}
			_, _ = w.Write([]byte(reply))
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/image":
			require.NoError(t, r.ParseMultipartForm(1<<20))
			_, header, err := r.FormFile("file")
			require.NoError(t, err)
			f.imageNames = append(f.imageNames, r.FormValue("propertyId")+"/"+header.Filename)
			if header.Filename == f.failImage {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPut:
			if f.failUpdate {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`{"status":"Success"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newClient(t *testing.T, api *fakeAPI) *spacia.Client {
	server := httptest.NewServer(api.handler(t))
	t.Cleanup(server.Close)
	return spacia.NewClient(server.URL+"/api/v1", 5*time.Second)
}

type recordingNavigator struct{ paths []string }

func (n *recordingNavigator) Navigate(path string) { n.paths = append(n.paths, path) }

func TestCreateFlowPersistsThenUploadsInOrder(t *testing.T) {
	api := &fakeAPI{}
	client := newClient(t, api)
	nav := &recordingNavigator{}

	var states []State
	var progress []float64
	flow := NewCreateFlow(client, upload.NewSequencer(client, upload.StopOnFirstFailure), nav,
		WithTransitionHook(func(from, to State) { states = append(states, to) }),
		WithProgressHook(func(p float64) { progress = append(progress, p) }))

	result, err := flow.Submit(context.Background(), filledModel(), pending("a.jpg", "b.jpg"))
	require.NoError(t, err)

	assert.Equal(t, []string{"POST /api/v1/property", "POST /api/v1/image", "POST /api/v1/image"}, api.requests)
	assert.JSONEq(t, `[]`, string(api.createBody["images"]))
	assert.Equal(t, []string{"new-1/a.jpg", "new-1/b.jpg"}, api.imageNames)
	assert.Equal(t, []float64{0.5, 1}, progress)
	assert.Equal(t, []State{StateValidating, StatePersistingProperty, StateUploadingImages, StateSucceeded}, states)
	assert.Equal(t, []string{CollectionPath}, nav.paths)
	assert.Equal(t, StateSucceeded, result.State)
	assert.Equal(t, "new-1", result.PropertyID)
}

func TestCreateFlowStripsDraftImages(t *testing.T) {
	api := &fakeAPI{}
	client := newClient(t, api)
	model := filledModel()
	draft := model.Draft()
	draft.Images = []string{"https://cdn/old.jpg"}
	model.Replace(draft)

	_, err := NewCreateFlow(client, upload.NewSequencer(client, upload.StopOnFirstFailure), nil).
		Submit(context.Background(), model, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(api.createBody["images"]))
	assert.Equal(t, []string{"https://cdn/old.jpg"}, model.Draft().Images)
}

func TestValidationFailureMakesNoRequests(t *testing.T) {
	api := &fakeAPI{}
	client := newClient(t, api)
	model := filledModel().SetField(form.FieldPropertyType, "")

	var states []State
	flow := NewCreateFlow(client, upload.NewSequencer(client, upload.StopOnFirstFailure), nil,
		WithTransitionHook(func(from, to State) { states = append(states, to) }))
	result, err := flow.Submit(context.Background(), model, pending("a.jpg"))

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Empty(t, api.requests)
	assert.Equal(t, []State{StateValidating, StateFailed}, states)
	assert.Contains(t, result.Fields, "propertyType")
}

func TestMissingCreationIDFails(t *testing.T) {
	api := &fakeAPI{createReply: `{"status":"Success"}`}
	client := newClient(t, api)
	nav := &recordingNavigator{}
	model := filledModel()
	before := model.Draft()

	result, err := NewCreateFlow(client, upload.NewSequencer(client, upload.StopOnFirstFailure), nav).
		Submit(context.Background(), model, pending("a.jpg"))

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindServer))
	assert.Equal(t, apperrors.MsgAddPropertyFailed, result.Banner)
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, []string{"POST /api/v1/property"}, api.requests)
	assert.Empty(t, nav.paths)
	assert.Equal(t, before, model.Draft())
}

func TestUploadFailureIsPartialUpload(t *testing.T) {
	api := &fakeAPI{failImage: "b.jpg"}
	client := newClient(t, api)
	nav := &recordingNavigator{}

	var progress []float64
	result, err := NewCreateFlow(client, upload.NewSequencer(client, upload.StopOnFirstFailure), nav,
		WithProgressHook(func(p float64) { progress = append(progress, p) })).
		Submit(context.Background(), filledModel(), pending("a.jpg", "b.jpg", "c.jpg"))

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindPartialUpload, appErr.Kind)
	assert.Equal(t, "new-1", appErr.PropertyID)
	assert.Equal(t, apperrors.MsgAddPropertyFailed, appErr.UserMessage)
	assert.Contains(t, appErr.Error(), "b.jpg")

	assert.Equal(t, []string{"new-1/a.jpg", "new-1/b.jpg"}, api.imageNames)
	assert.Equal(t, []float64{1.0 / 3}, progress)
	assert.Len(t, result.Uploads, 3)
	assert.Empty(t, nav.paths)
}

func TestUpdateFlowSkipsUploads(t *testing.T) {
	api := &fakeAPI{}
	client := newClient(t, api)
	nav := &recordingNavigator{}

	var states []State
	flow := NewUpdateFlow(client, "p7", nav,
		WithTransitionHook(func(from, to State) { states = append(states, to) }))
	result, err := flow.Submit(context.Background(), filledModel(), pending("ignored.jpg"))

	require.NoError(t, err)
	assert.Equal(t, []string{"PUT /api/v1/property/p7"}, api.requests)
	assert.Equal(t, []State{StateValidating, StatePersistingProperty, StateSucceeded}, states)
	assert.Equal(t, "p7", result.PropertyID)
	assert.Equal(t, []string{CollectionPath}, nav.paths)
}

func TestUpdateFlowFailureBanner(t *testing.T) {
	api := &fakeAPI{failUpdate: true}
	client := newClient(t, api)

	result, err := NewUpdateFlow(client, "p7", nil).Submit(context.Background(), filledModel(), nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.MsgUpdatePropertyFailed, result.Banner)
}

func TestFlowIsSingleUse(t *testing.T) {
	api := &fakeAPI{}
	client := newClient(t, api)
	flow := NewUpdateFlow(client, "p7", nil)

	_, err := flow.Submit(context.Background(), filledModel(), nil)
	require.NoError(t, err)
	_, err = flow.Submit(context.Background(), filledModel(), nil)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Len(t, api.requests, 1)
}
