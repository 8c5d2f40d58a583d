package minecraft

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(handler http.HandlerFunc) (*MojangResolver, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &MojangResolver{client: srv.Client(), baseURL: srv.URL}, srv
}

func TestResolveUUIDFromProfile(t *testing.T) {
	r, srv := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/users/profiles/minecraft/Notch", req.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"069a79f444e94726a5befca90e38aaf5","name":"Notch"}`))
	})
	defer srv.Close()

	uuid, err := r.ResolveUUID(context.Background(), "Notch")
	require.NoError(t, err)
	assert.Equal(t, "069a79f4-44e9-4726-a5be-fca90e38aaf5", uuid)
}

func TestResolveUUIDUnknownNameFallsBackToOffline(t *testing.T) {
	r, srv := newTestResolver(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	uuid, err := r.ResolveUUID(context.Background(), "Herobrine")
	require.NoError(t, err)
	assert.Equal(t, OfflineUUID("Herobrine"), uuid)
}

func TestResolveUUIDServerError(t *testing.T) {
	r, srv := newTestResolver(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := r.ResolveUUID(context.Background(), "Steve")
	assert.Error(t, err)
}

func TestOfflineUUID(t *testing.T) {
	a := OfflineUUID("Steve")
	b := OfflineUUID("Steve")
	c := OfflineUUID("Alex")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	require.Len(t, a, 36)
	assert.Equal(t, byte('3'), a[14]) // version 3
	assert.Contains(t, "89ab", string(a[19]))
}
