package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

func TestStoreSetIsFullReplace(t *testing.T) {
	store := NewStore(NewMemoryStorage())

	store.Set(State{Token: "tok-1", UserName: "Dana", WorkspaceID: "ws-1", Role: domain.RoleOwner})
	store.Set(State{Token: "tok-2", UserName: "Dana"})

	snap := store.Snapshot()
	assert.Equal(t, "tok-2", snap.Token)
	assert.Empty(t, snap.WorkspaceID)
	assert.Empty(t, string(snap.Role))
}

func TestStoreLastWriteWins(t *testing.T) {
	store := NewStore(NewMemoryStorage())

	writes := []State{
		{Token: "a", UserName: "A", WorkspaceID: "ws-a", Role: domain.RoleOwner},
		{Token: "b", UserName: "B", WorkspaceID: "ws-b", Role: domain.RoleStaff},
		{Token: "c", UserName: "C", WorkspaceID: "ws-c", Role: domain.RoleOwner},
	}
	for _, next := range writes {
		store.Set(next)
	}

	assert.Equal(t, writes[len(writes)-1], store.Snapshot())
}

func TestStoreClearWipesEverything(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	store.Set(State{Token: "tok", UserName: "Dana", WorkspaceID: "ws-1", Role: domain.RoleOwner})

	store.Clear()

	assert.Equal(t, State{}, store.Snapshot())
	assert.False(t, store.Snapshot().Authenticated())
}

func TestStoreNotifiesSubscribersOnChange(t *testing.T) {
	store := NewStore(NewMemoryStorage())

	calls := 0
	unsubscribe := store.Subscribe(func() { calls++ })
	defer unsubscribe()

	store.Set(State{Token: "tok"})
	store.Set(State{Token: "tok"}) // unchanged, no notification
	store.Set(State{Token: "tok-2"})

	assert.Equal(t, 2, calls)
}

func TestStoreHydratesFromStorage(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Store(map[string]string{
		keyToken:       "persisted",
		keyWorkspaceID: "ws-9",
		keyUserName:    "Jo",
		keyRole:        "staff",
	}))

	snap := NewStore(storage).Snapshot()
	assert.Equal(t, "persisted", snap.Token)
	assert.Equal(t, "ws-9", snap.WorkspaceID)
	assert.Equal(t, domain.RoleStaff, snap.Role)
}

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := NewFileStorage(path)

	require.NoError(t, storage.Store(map[string]string{keyToken: "tok", keyUserName: "Dana"}))
	require.NoError(t, storage.Store(map[string]string{keyUserName: ""}))

	values, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", values[keyToken])
	assert.Empty(t, values[keyUserName])
}

func TestPrefsDismissedAlertsPerWorkspace(t *testing.T) {
	prefs := NewPrefs(NewMemoryStorage())

	prefs.SetDismissedAlertIDs("ws-1", []string{"a-1", "a-2"})
	prefs.SetDismissedAlertIDs("ws-2", []string{"a-3"})

	assert.Equal(t, []string{"a-1", "a-2"}, prefs.DismissedAlertIDs("ws-1"))
	assert.Equal(t, []string{"a-3"}, prefs.DismissedAlertIDs("ws-2"))

	prefs.SetDismissedAlertIDs("ws-1", nil)
	assert.Empty(t, prefs.DismissedAlertIDs("ws-1"))
	assert.Equal(t, []string{"a-3"}, prefs.DismissedAlertIDs("ws-2"))
}

func TestPrefsContactFormAcknowledgement(t *testing.T) {
	prefs := NewPrefs(NewMemoryStorage())

	assert.False(t, prefs.ContactFormAcknowledged("ws-1"))

	prefs.AcknowledgeContactForm("ws-1")
	assert.True(t, prefs.ContactFormAcknowledged("ws-1"))
	assert.False(t, prefs.ContactFormAcknowledged("ws-2"))

	// Empty workspace ids never acknowledge.
	prefs.AcknowledgeContactForm("")
	assert.False(t, prefs.ContactFormAcknowledged(""))
}

func TestPeekClaimsMalformedToken(t *testing.T) {
	assert.Nil(t, PeekClaims(""))
	assert.Nil(t, PeekClaims("not-a-jwt"))
	assert.False(t, PeekClaims("not-a-jwt").Expired(time.Now()))
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestAuthenticatedHonorsTokenExpiry(t *testing.T) {
	store := NewStore(NewMemoryStorage())

	store.Set(State{Token: signedToken(t, time.Now().Add(time.Hour))})
	assert.True(t, store.Snapshot().Authenticated())

	store.Set(State{Token: signedToken(t, time.Now().Add(-time.Hour))})
	assert.False(t, store.Snapshot().Authenticated())
}

func TestPeekClaimsReadsSubjectAndExpiry(t *testing.T) {
	expiresAt := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	claims := PeekClaims(signedToken(t, expiresAt))

	require.NotNil(t, claims)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(expiresAt.Add(time.Second)))
}
