package application

import (
	"context"
	"embed"
	"strings"
	"sync"
	"testing"
	"time"

	"wingsync/internal/models"
	"wingsync/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

type fakeStore struct {
	links     map[string]models.Link
	upsertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{links: make(map[string]models.Link)}
}

func (f *fakeStore) Upsert(link models.Link) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	link.LinkedAt = time.Now()
	f.links[link.UUID] = link
	return nil
}

func (f *fakeStore) RemoveByUUID(uuid string) error {
	delete(f.links, uuid)
	return nil
}

func (f *fakeStore) RemoveByName(username string) error {
	for uuid, link := range f.links {
		if strings.EqualFold(link.Username, username) {
			delete(f.links, uuid)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) FindByDiscordID(discordID string) ([]string, error) {
	var names []string
	for _, link := range f.links {
		if link.DiscordID == discordID {
			names = append(names, link.Username)
		}
	}
	return names, nil
}

func (f *fakeStore) FindDiscordNameByUsername(username string) (string, error) {
	for _, link := range f.links {
		if strings.EqualFold(link.Username, username) {
			return link.DiscordName, nil
		}
	}
	return "", repository.ErrNotFound
}

func (f *fakeStore) FindDiscordIDByUUID(uuid string) (string, error) {
	link, ok := f.links[uuid]
	if !ok {
		return "", repository.ErrNotFound
	}
	return link.DiscordID, nil
}

func (f *fakeStore) All() ([]models.Link, error) {
	var links []models.Link
	for _, l := range f.links {
		links = append(links, l)
	}
	return links, nil
}

func (f *fakeStore) Backend() string        { return "fake" }
func (f *fakeStore) BackendDetails() string { return "fake details" }

type fakeGateway struct {
	mu        sync.Mutex
	whitelist map[string]struct{}
	removes   []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{whitelist: make(map[string]struct{})}
}

func (g *fakeGateway) Add(_ context.Context, username string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.whitelist[username] = struct{}{}
	return nil
}

func (g *fakeGateway) Remove(_ context.Context, username string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.whitelist, username)
	g.removes = append(g.removes, username)
	return nil
}

func (g *fakeGateway) List(_ context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var names []string
	for name := range g.whitelist {
		names = append(names, name)
	}
	return names, nil
}

type fakeResolver struct{}

func (fakeResolver) ResolveUUID(_ context.Context, username string) (string, error) {
	return "uuid-" + strings.ToLower(username), nil
}

const adminID = "999"

func newTestService(store LinkStore, gateway Gateway) WhitelistService {
	return NewWhitelistServiceImpl(store, gateway, fakeResolver{}, adminID, nopLogger{})
}

func TestLinkThenRelinkKeepsOneLink(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	svc := newTestService(store, gateway)
	ctx := context.Background()

	require.NoError(t, svc.Link(ctx, "Steve", "100", "steve_dc"))
	require.NoError(t, svc.Link(ctx, "Steve", "100", "steve_dc"))

	assert.Len(t, store.links, 1)
	assert.Len(t, gateway.whitelist, 1)
	assert.Contains(t, gateway.whitelist, "Steve")
}

func TestUnlinkByNonOwnerIsDenied(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	svc := newTestService(store, gateway)
	ctx := context.Background()

	require.NoError(t, svc.Link(ctx, "Alex", "100", "steve_dc"))

	err := svc.Unlink(ctx, "Alex", "200")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Neither the whitelist nor the link table changed.
	assert.Contains(t, gateway.whitelist, "Alex")
	assert.Empty(t, gateway.removes)
	names, err := svc.Whois(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alex"}, names)
}

func TestUnlinkByOwner(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	svc := newTestService(store, gateway)
	ctx := context.Background()

	require.NoError(t, svc.Link(ctx, "Steve", "100", "steve_dc"))
	require.NoError(t, svc.Unlink(ctx, "Steve", "100"))

	assert.NotContains(t, gateway.whitelist, "Steve")
	_, err := svc.Whomc(ctx, "Steve")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUnlinkByAdminOverridesOwnership(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	svc := newTestService(store, gateway)
	ctx := context.Background()

	require.NoError(t, svc.Link(ctx, "Steve", "100", "steve_dc"))
	require.NoError(t, svc.Unlink(ctx, "Steve", adminID))

	assert.NotContains(t, gateway.whitelist, "Steve")
	assert.Empty(t, store.links)
}

func TestUnlinkUnknownNameIsDenied(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeGateway())

	err := svc.Unlink(context.Background(), "Nobody", "100")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestLinkSucceedsWhenStorePersistFails(t *testing.T) {
	store := newFakeStore()
	store.upsertErr = repository.ErrPersistFailed
	gateway := newFakeGateway()
	svc := newTestService(store, gateway)

	// The player made it onto the access list, which is what the success
	// reply promises; the stale link table is recoverable by re-linking.
	require.NoError(t, svc.Link(context.Background(), "Steve", "100", "steve_dc"))
	assert.Contains(t, gateway.whitelist, "Steve")
}

func TestWhoisWithNoLinks(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeGateway())

	names, err := svc.Whois(context.Background(), "404")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRevokeWithoutExistingLink(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	svc := newTestService(store, gateway)

	require.NoError(t, svc.Revoke(context.Background(), "Griefer"))
	assert.Equal(t, []string{"Griefer"}, gateway.removes)
}

func TestRevokeRemovesLinkByName(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	svc := newTestService(store, gateway)
	ctx := context.Background()

	require.NoError(t, svc.Link(ctx, "Steve", "100", "steve_dc"))
	require.NoError(t, svc.Revoke(ctx, "steve"))

	assert.NotContains(t, gateway.whitelist, "Steve")
	_, err := svc.Whomc(ctx, "Steve")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

var noMigrations embed.FS

// End-to-end over the real file backend: postgres is configured but
// unreachable, the repository falls back to file storage, and a link survives
// the round trip to whomc.
func TestLinkRoundTripOnFileFallback(t *testing.T) {
	cfg := &repository.Config{
		PostgresEnabled: true,
		Host:            "127.0.0.1",
		Port:            "1",
		DataDir:         t.TempDir(),
	}
	repo, err := repository.New(cfg, noMigrations, nopLogger{})
	require.NoError(t, err)
	defer repo.Close()

	svc := newTestService(repo, newFakeGateway())
	ctx := context.Background()

	backend, _ := svc.StorageStatus()
	assert.Equal(t, repository.BackendFile, backend)

	require.NoError(t, svc.Link(ctx, "Steve", "100", "steve_dc"))

	name, err := svc.Whomc(ctx, "Steve")
	require.NoError(t, err)
	assert.Equal(t, "steve_dc", name)
}
