package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store", "session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	sess := &Session{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-def",
		User:         &User{ID: 7, Email: "jane@example.com", FirstName: "Jane"},
	}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("session file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("session file mode = %o, want 600", perm)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.AccessToken != "access-abc" || loaded.RefreshToken != "refresh-def" {
		t.Fatalf("loaded = %+v", loaded)
	}
	if loaded.User == nil || loaded.User.ID != 7 || loaded.User.Email != "jane@example.com" {
		t.Fatalf("loaded user = %+v", loaded.User)
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	if err := store.Save(ctx, &Session{AccessToken: "tok"}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() after Clear() error = %v, want ErrNotFound", err)
	}

	// Clearing an already-empty store is not an error
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second Clear() failed: %v", err)
	}
}

func TestManagerRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()

	if err := NewFileStore(path).Save(ctx, &Session{AccessToken: "persisted"}); err != nil {
		t.Fatalf("seed Save() failed: %v", err)
	}

	mgr := NewManager(NewFileStore(path))
	if err := mgr.Restore(ctx); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if !mgr.IsAuthenticated() || mgr.Token() != "persisted" {
		t.Fatalf("token = %q, authenticated = %v", mgr.Token(), mgr.IsAuthenticated())
	}
}

func TestManagerRestoreEmptyStore(t *testing.T) {
	mgr := NewManager(NewFileStore(filepath.Join(t.TempDir(), "absent.json")))
	if err := mgr.Restore(context.Background()); err != nil {
		t.Fatalf("Restore() on empty store failed: %v", err)
	}
	if mgr.IsAuthenticated() {
		t.Fatal("manager authenticated after empty restore")
	}
}

func TestManagerSetAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	mgr := NewManager(NewFileStore(path))
	ctx := context.Background()

	if err := mgr.Set(ctx, &Session{AccessToken: "tok", User: &User{ID: 3}}); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if mgr.Token() != "tok" || mgr.User() == nil || mgr.User().ID != 3 {
		t.Fatalf("token = %q, user = %+v", mgr.Token(), mgr.User())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Set() did not persist: %v", err)
	}

	if err := mgr.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if mgr.IsAuthenticated() || mgr.User() != nil {
		t.Fatal("manager still holds state after Clear()")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("session file survived Clear(): %v", err)
	}
}

func TestManagerCurrentReturnsCopy(t *testing.T) {
	mgr := NewManager(NewFileStore(filepath.Join(t.TempDir(), "session.json")))
	if err := mgr.Set(context.Background(), &Session{AccessToken: "tok"}); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	snap := mgr.Current()
	snap.AccessToken = "mutated"
	if mgr.Token() != "tok" {
		t.Fatalf("mutating Current() copy changed manager state: %q", mgr.Token())
	}
}

func TestAccessTokenExpiry(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	sess := &Session{AccessToken: signedToken(t, expiry)}

	got, err := sess.AccessTokenExpiry()
	if err != nil {
		t.Fatalf("AccessTokenExpiry() failed: %v", err)
	}
	if !got.Equal(expiry) {
		t.Fatalf("expiry = %v, want %v", got, expiry)
	}
	if sess.IsExpired() {
		t.Fatal("token expiring in an hour reported as expired")
	}
}

func TestIsExpiredPastToken(t *testing.T) {
	sess := &Session{AccessToken: signedToken(t, time.Now().Add(-time.Minute))}
	if !sess.IsExpired() {
		t.Fatal("token that expired a minute ago reported live")
	}
}

func TestMalformedTokenTreatedAsLive(t *testing.T) {
	sess := &Session{AccessToken: "not-a-jwt"}
	if _, err := sess.AccessTokenExpiry(); err == nil {
		t.Fatal("AccessTokenExpiry() on malformed token succeeded")
	}
	if sess.IsExpired() {
		t.Fatal("malformed token reported as expired")
	}
}
