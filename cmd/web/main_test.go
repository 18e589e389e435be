package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/yuin/goldmark"

	"github.com/lifeonlars/styrkur/internal/exercisedb"
	"github.com/lifeonlars/styrkur/internal/session"
	"github.com/lifeonlars/styrkur/internal/storage"
	"github.com/lifeonlars/styrkur/internal/testhelpers"
	"github.com/lifeonlars/styrkur/internal/workout"
)

// newTestServer starts the full route stack over in-memory storage. The
// returned client carries a cookie jar so every request shares one
// browser-storage scope, the way a single browser would.
func newTestServer(t *testing.T, exerciseDBURL string) (*httptest.Server, *http.Client) {
	t.Helper()

	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	store := storage.NewMemoryStore()

	sessionManager := scs.New()
	// The test server speaks plain HTTP and the cookie jar drops Secure
	// cookies on insecure origins.
	sessionManager.Cookie.Secure = false

	app := &application{
		logger:         logger,
		sessionManager: sessionManager,
		workouts:       workout.NewRepository(store, logger),
		programs:       workout.NewProgramRepository(store, logger),
		sessions:       session.NewStore(store, logger),
		exerciseDB:     exercisedb.NewClient(exerciseDBURL, logger),
		markdown:       goldmark.New(),
	}

	server := httptest.NewServer(app.routes())
	t.Cleanup(server.Close)

	return server, newBrowserClient(t, server)
}

// newBrowserClient returns a client with its own cookie jar, i.e. its own
// browser-storage scope.
func newBrowserClient(t *testing.T, server *httptest.Server) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{
		Transport: server.Client().Transport,
		Jar:       jar,
	}
}

// doJSON sends a request with an optional JSON body and decodes the response
// into out when out is non-nil. It returns the status code.
func doJSON(t *testing.T, client *http.Client, method, url string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
