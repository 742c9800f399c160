package masterdata

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/models"
)

type stubFetcher struct {
	data  models.MasterData
	err   error
	calls int
}

func (s *stubFetcher) FetchMasterData(ctx context.Context) (models.MasterData, error) {
	s.calls++
	return s.data, s.err
}

func TestFetchReturnsData(t *testing.T) {
	stub := &stubFetcher{data: models.MasterData{Amenities: []string{"Gym"}}}
	data, err := NewClient(stub).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Gym"}, data.Amenities)
}

func TestFetchDoesNotRetryOrCache(t *testing.T) {
	stub := &stubFetcher{err: apperrors.NewServerError("fetch_master_data", http.StatusInternalServerError, "")}
	client := NewClient(stub)

	_, err := client.Fetch(context.Background())
	assert.True(t, apperrors.IsKind(err, apperrors.KindServer))
	assert.Equal(t, 1, stub.calls)

	stub.err = nil
	stub.data = models.MasterData{Locations: []string{"Dublin 2"}}
	data, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, []string{"Dublin 2"}, data.Locations)
}

func TestFetchMapsTransportErrors(t *testing.T) {
	stub := &stubFetcher{err: context.DeadlineExceeded}
	_, err := NewClient(stub).Fetch(context.Background())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNetwork))
}

func TestLoadDegradesToEmptyLists(t *testing.T) {
	stub := &stubFetcher{err: errors.New("boom")}
	loaded := NewClient(stub).Load(context.Background())

	assert.Equal(t, apperrors.MsgMasterDataUnavailable, loaded.Banner)
	assert.True(t, loaded.Data.Empty())
	assert.NotNil(t, loaded.Data.Amenities)
}
