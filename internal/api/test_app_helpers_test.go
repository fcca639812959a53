package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/backend"
	"github.com/terraincognita07/quitpath/internal/db"
	"github.com/terraincognita07/quitpath/internal/i18n"
	"github.com/terraincognita07/quitpath/internal/models"
	"github.com/terraincognita07/quitpath/internal/services"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type backendCall struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

type backendReply struct {
	status int
	body   string
}

// fakeBackend answers by method and path and records every call.
type fakeBackend struct {
	mu      sync.Mutex
	replies map[string]backendReply
	queued  map[string][]backendReply
	calls   []backendCall
}

func newFakeBackend(t *testing.T) (*fakeBackend, string) {
	t.Helper()

	fake := &fakeBackend{replies: map[string]backendReply{}, queued: map[string][]backendReply{}}
	server := httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(server.Close)
	return fake, server.URL
}

func (fake *fakeBackend) reply(method string, path string, status int, body string) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.replies[method+" "+path] = backendReply{status: status, body: body}
}

// replyOnce answers the next call to the route before falling back to the
// reply set with reply.
func (fake *fakeBackend) replyOnce(method string, path string, status int, body string) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	key := method + " " + path
	fake.queued[key] = append(fake.queued[key], backendReply{status: status, body: body})
}

func (fake *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	fake.mu.Lock()
	fake.calls = append(fake.calls, backendCall{
		Method: r.Method,
		Path:   r.URL.Path,
		Auth:   r.Header.Get("Authorization"),
		Body:   string(body),
	})
	key := r.Method + " " + r.URL.Path
	reply, ok := fake.replies[key]
	if queue := fake.queued[key]; len(queue) > 0 {
		reply, ok = queue[0], true
		fake.queued[key] = queue[1:]
	}
	fake.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"not found"}`)
		return
	}
	w.WriteHeader(reply.status)
	_, _ = io.WriteString(w, reply.body)
}

func (fake *fakeBackend) callsTo(method string, path string) []backendCall {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	matched := make([]backendCall, 0)
	for _, call := range fake.calls {
		if call.Method == method && call.Path == path {
			matched = append(matched, call)
		}
	}
	return matched
}

func moduleRoot(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve test file path")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

func newTestHandler(t *testing.T, backendURL string) *Handler {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "quitpath-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	client, err := backend.NewClient(backendURL, 2*time.Second)
	if err != nil {
		t.Fatalf("init backend client: %v", err)
	}

	root := moduleRoot(t)
	manager, err := i18n.NewManager(i18n.LangEN, filepath.Join(root, "internal", "i18n", "locales"))
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	location, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		location = time.UTC
	}

	handler, err := NewHandler(HandlerConfig{
		Backend:     client,
		Sessions:    services.NewSessionService(db.NewRepositories(database).Sessions, time.Hour),
		SecretKey:   testSecretKey,
		TemplateDir: filepath.Join(root, "internal", "templates"),
		Location:    location,
		I18n:        manager,
		UpgradePath: "/subscribe",
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return handler
}

func newTestApp(handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func newTestAppWithBackend(t *testing.T) (*fiber.App, *Handler, *fakeBackend) {
	t.Helper()

	fake, backendURL := newFakeBackend(t)
	handler := newTestHandler(t, backendURL)
	return newTestApp(handler), handler, fake
}

// sessionCookieFor starts a session for user and returns a Cookie header
// value carrying it.
func sessionCookieFor(t *testing.T, handler *Handler, user models.User) string {
	t.Helper()

	session, err := handler.sessions.Start("test-token-"+user.Role, user)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	sealed, err := handler.cookieCodec.seal(sessionCookiePurpose, []byte(session.ID))
	if err != nil {
		t.Fatalf("seal session cookie: %v", err)
	}
	return sessionCookieName + "=" + sealed
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, cookie string, form url.Values) *http.Response {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	request := httptest.NewRequest(method, path, body)
	if form != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { response.Body.Close() })
	return response
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(body)
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]any{}
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
	message, _ := payload["error"].(string)
	return message
}

func assertContains(t *testing.T, rendered string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(rendered, fragment) {
			t.Fatalf("expected output to include %q", fragment)
		}
	}
}

func assertNotContains(t *testing.T, rendered string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(rendered, fragment) {
			t.Fatalf("expected output not to include %q", fragment)
		}
	}
}

var (
	testAdmin     = models.User{ID: 1, Username: "admin", Email: "admin@example.com", Role: models.RoleAdmin}
	testCoach     = models.User{ID: 2, Username: "coach-lan", Email: "coach@example.com", Role: models.RoleCoach}
	testMember    = models.User{ID: 3, Username: "minh", Email: "minh@example.com", Role: models.RoleMember}
	testMemberVIP = models.User{ID: 4, Username: "vy", Email: "vy@example.com", Role: models.RoleMemberVIP}
)
