package selfcare

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jhutar/o2family-info-o-cisle/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const testUsername = "pepa"
const testPassword = "hunter2"

const landingPage = `<html><body>
<div class="lines">
	<a href="/nastaveni-tarifu-a-sluzeb/11/nastaveni"><span>720111111</span></a>
	<a href="/nastaveni-tarifu-a-sluzeb/11/nastaveni">720111111</a>
	<a href="/nastaveni-tarifu-a-sluzeb/22/nastaveni">720222222</a>
</div>
</body></html>`

const loginPage = `<html><body>
<div class="alert-danger">
	Zadané přihlašovací údaje nejsou platné.
</div>
<form method="post" action="/">
	<input name="_username" type="text"/>
	<input name="_password" type="password"/>
</form>
</body></html>`

func hasSession(r *http.Request) bool {
	cookie, err := r.Cookie("PHPSESSID")
	return err == nil && cookie.Value == "test-session"
}

// stubs just enough of the portal: a login form on /, a session cookie
// and the per-line tariff endpoint
func newPortalServer() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if r.FormValue("_logintype") != "login" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if r.FormValue("_username") != testUsername || r.FormValue("_password") != testPassword {
				w.Write([]byte(loginPage))
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "test-session", Path: "/"})
			w.Write([]byte(landingPage))
			return
		}
		if !hasSession(r) {
			w.Write([]byte(loginPage))
			return
		}
		w.Write([]byte(landingPage))
	})

	mux.HandleFunc("/api/tariff-info/", func(w http.ResponseWriter, r *http.Request) {
		if !hasSession(r) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/tariff-info/")
		w.Header().Set("content-type", "application/json")
		switch id {
		case "11":
			w.Write([]byte(`{"tariff":"X"}`))
		case "22":
			w.Write([]byte(`{"tariff":"Y"}`))
		case "33":
			w.Write([]byte(`{"tariff":`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	return httptest.NewServer(mux)
}

func TestLoginRejected(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:selfcare")
	defer cleanup()

	server := newPortalServer()
	defer server.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	_, err = client.LoginUsernamePassword(ctx, testUsername, "wrong")
	require.ErrorIs(t, err, ErrLoginFailed)
}

func TestClient(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:selfcare")
	defer cleanup()

	server := newPortalServer()
	defer server.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	landing, err := client.LoginUsernamePassword(ctx, testUsername, testPassword)
	require.NoError(t, err)

	expected := map[string]string{
		"720111111": "11",
		"720222222": "22",
	}
	matches := ScanLines(bytes.NewReader(landing))
	diff := cmp.Diff(expected, matches)
	require.Empty(t, diff)

	t.Run("Lines", func(t *testing.T) {
		matches, err := client.Lines(ctx)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(expected, matches))
	})

	t.Run("TariffInfo", func(t *testing.T) {
		payload, err := client.TariffInfo(ctx, "11")
		require.NoError(t, err)
		require.JSONEq(t, `{"tariff":"X"}`, string(payload))

		payload, err = client.TariffInfo(ctx, "22")
		require.NoError(t, err)
		require.JSONEq(t, `{"tariff":"Y"}`, string(payload))
	})

	t.Run("TariffInfoUnknownLine", func(t *testing.T) {
		_, err := client.TariffInfo(ctx, "99")
		require.Error(t, err)
	})

	t.Run("TariffInfoBrokenPayload", func(t *testing.T) {
		_, err := client.TariffInfo(ctx, "33")
		require.Error(t, err)
	})
}

func TestTariffInfoWithoutSession(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:selfcare")
	defer cleanup()

	server := newPortalServer()
	defer server.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	_, err = client.TariffInfo(ctx, "11")
	require.Error(t, err)
}
