package sotah

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "api.sotah.info" {
		t.Fatalf("default url = %q, want https://api.sotah.info", u.String())
	}

	u, err = parseBaseURL("127.0.0.1:8080")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "127.0.0.1:8080" {
		t.Fatalf("bare host url = %q, want http://127.0.0.1:8080", u.String())
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpoints(t *testing.T) {
	t.Parallel()

	var gotUserAgent, gotRequestID, gotAuth, gotRealmsPath string
	var gotSaved UserPreference

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/ping":
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/boot":
			_ = json.NewEncoder(w).Encode(Boot{
				Regions:     []Region{{Name: "eu"}, {Name: "us"}},
				ItemClasses: []ItemClass{{Class: 2, Name: "Weapon", SubClasses: []SubItemClass{{SubClass: 7, Name: "Sword"}}}},
			})
		case strings.HasPrefix(r.URL.Path, "/region/"):
			gotRealmsPath = r.URL.Path
			_ = json.NewEncoder(w).Encode(realmsResponse{Realms: []Realm{{Slug: "org", Name: "Orgrimmar"}, {Slug: "sw"}}})
		case r.URL.Path == "/user/preferences" && r.Method == http.MethodPut:
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&gotSaved)
			_ = json.NewEncoder(w).Encode(gotSaved)
		case r.URL.Path == "/user/pricelists/region/us/realm/org":
			_ = json.NewEncoder(w).Encode(pricelistsResponse{Pricelists: []Pricelist{{ID: 3, Name: "Herbs"}}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}

	boot, err := c.Boot(ctx)
	if err != nil {
		t.Fatalf("Boot returned error: %v", err)
	}
	if len(boot.Regions) != 2 || boot.Regions[0].Name != "eu" {
		t.Fatalf("Boot regions = %#v, want [eu us]", boot.Regions)
	}
	if len(boot.ItemClasses) != 1 || boot.ItemClasses[0].SubClasses[0].SubClass != 7 {
		t.Fatalf("Boot item classes = %#v, want weapon with sword", boot.ItemClasses)
	}

	realms, err := c.Realms(ctx, "us")
	if err != nil {
		t.Fatalf("Realms returned error: %v", err)
	}
	if gotRealmsPath != "/region/us/realms" {
		t.Fatalf("realms path = %q, want /region/us/realms", gotRealmsPath)
	}
	if len(realms) != 2 || realms[0].Slug != "org" {
		t.Fatalf("Realms = %#v, want [org sw] in order", realms)
	}

	saved, err := c.SavePreferences(ctx, "tok", UserPreference{CurrentRegion: "us", CurrentRealm: "org"})
	if err != nil {
		t.Fatalf("SavePreferences returned error: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("Authorization = %q, want Bearer tok", gotAuth)
	}
	if saved.CurrentRealm != "org" || gotSaved.CurrentRegion != "us" {
		t.Fatalf("SavePreferences = %#v (sent %#v), want us/org", saved, gotSaved)
	}

	lists, err := c.Pricelists(ctx, "tok", "us", "org")
	if err != nil {
		t.Fatalf("Pricelists returned error: %v", err)
	}
	if len(lists) != 1 || lists[0].ID != 3 {
		t.Fatalf("Pricelists = %#v, want one list id=3", lists)
	}

	if !strings.HasPrefix(gotUserAgent, "realmboard/") {
		t.Fatalf("User-Agent = %q, want realmboard/*", gotUserAgent)
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-ID header missing")
	}
}

func TestClient_PreferencesNotFoundIsNil(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	pref, err := c.Preferences(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Preferences returned error: %v", err)
	}
	if pref != nil {
		t.Fatalf("Preferences = %#v, want nil", pref)
	}
}

func TestClient_UnauthorizedAndDecodeErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user":
			w.WriteHeader(http.StatusUnauthorized)
		case "/boot":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/ping":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ReloadUser(context.Background(), "stale")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("ReloadUser error = %v, want ErrUnauthorized", err)
	}

	_, err = c.Boot(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Boot error = %v, want decode response error", err)
	}

	err = c.Ping(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("Ping error = %v, want status 500 error", err)
	}
}

func TestClient_ValidatesArguments(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Realms(context.Background(), " "); err == nil {
		t.Fatalf("Realms returned nil error for empty region")
	}
	if _, err := c.Login(context.Background(), "", "pw"); err == nil {
		t.Fatalf("Login returned nil error for empty email")
	}
	if _, err := c.Pricelists(context.Background(), "tok", "us", ""); err == nil {
		t.Fatalf("Pricelists returned nil error for empty realm")
	}
}

func TestRealm_LastModifiedTime(t *testing.T) {
	if got := (Realm{}).LastModifiedTime(); !got.IsZero() {
		t.Fatalf("LastModifiedTime = %v, want zero", got)
	}
	r := Realm{LastModified: 1500000000}
	if got := r.LastModifiedTime(); got.Unix() != 1500000000 {
		t.Fatalf("LastModifiedTime = %v, want unix 1500000000", got)
	}
}
