package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/akeren/creatorchain/config"
	"github.com/akeren/creatorchain/config/router"
	"github.com/akeren/creatorchain/domain"
	"github.com/akeren/creatorchain/internal/log"
	"github.com/akeren/creatorchain/internal/models"
	"github.com/akeren/creatorchain/internal/views"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeFormBackend answers like the hosted form service.
type fakeFormBackend struct {
	server *httptest.Server
	calls  atomic.Int32
	mu     sync.Mutex
	status int
	body   string
	last   map[string]string
}

func newFakeFormBackend() *fakeFormBackend {
	f := &fakeFormBackend{status: http.StatusOK, body: `{"ok":true}`}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		var fields map[string]string
		_ = json.NewDecoder(r.Body).Decode(&fields)

		f.mu.Lock()
		f.last = fields
		status, body := f.status, f.body
		f.mu.Unlock()

		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	return f
}

func (f *fakeFormBackend) respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body = status, body
}

func (f *fakeFormBackend) lastFields() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

type WaitlistAPITestSuite struct {
	suite.Suite
	db        *gorm.DB
	backend   *fakeFormBackend
	server    *httptest.Server
	baseURL   string
	appConfig *config.ApplicationConfig
}

func (s *WaitlistAPITestSuite) SetupSuite() {
	var err error
	s.db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared&_busy_timeout=10000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	// SQLite serializes writes at the database level. Limiting to one open
	// connection prevents "database is locked" errors under concurrent load.
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(s.db.AutoMigrate(models.ModelRegistry...))

	s.backend = newFakeFormBackend()
	appLogger := log.NewDiscardLogger()

	waitlistCfg := &config.WaitlistConfig{
		FormID:          "xdkpgdlw",
		Endpoint:        s.backend.server.URL + "/f",
		SubmitTimeout:   5 * time.Second,
		ViewTTL:         time.Hour,
		CleanupInterval: time.Minute,
		RateLimit:       1000,
		BreakerFailures: 100,
		BreakerRecovery: time.Second,
		AuditEnabled:    true,
	}
	s.Require().NoError(waitlistCfg.Validate())

	store, err := config.NewViewStore(appLogger, nil, "", waitlistCfg)
	s.Require().NoError(err)
	formClient, err := config.NewFormClient(appLogger, waitlistCfg)
	s.Require().NoError(err)

	s.appConfig = &config.ApplicationConfig{
		DB:         s.db,
		Logger:     appLogger,
		Views:      store,
		FormClient: formClient,
		Config:     &config.AppConfig{},
		Waitlist:   waitlistCfg,
	}
	s.appConfig.RouterService = router.CreateRouterService(appLogger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    30 * time.Second,
	})

	s.Require().NoError(domain.SetupCoreDomain(s.appConfig))

	s.server = httptest.NewServer(s.appConfig.RouterService.GetEngine())
	s.baseURL = s.server.URL
}

func (s *WaitlistAPITestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.backend != nil {
		s.backend.server.Close()
	}
	if s.appConfig != nil && s.appConfig.Views != nil {
		_ = s.appConfig.Views.Close()
	}
	if s.db != nil {
		sqlDB, _ := s.db.DB()
		sqlDB.Close()
	}
}

func (s *WaitlistAPITestSuite) SetupTest() {
	s.db.Exec("DELETE FROM submission_attempts")
	s.backend.respond(http.StatusOK, `{"ok":true}`)
	s.backend.calls.Store(0)
}

// openView loads the landing page and returns the view id it embeds.
func (s *WaitlistAPITestSuite) openView() string {
	resp, err := http.Get(s.baseURL + "/")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	s.Require().NoError(err)
	viewID, ok := doc.Find(`form#waitlist input[name="view_id"]`).Attr("value")
	s.Require().True(ok)
	s.Require().NotEmpty(viewID)
	return viewID
}

func (s *WaitlistAPITestSuite) postJSON(path string, body any) (int, map[string]any) {
	raw, _ := json.Marshal(body)
	resp, err := http.Post(s.baseURL+path, "application/json", bytes.NewBuffer(raw))
	s.Require().NoError(err)
	defer resp.Body.Close()

	var envelope map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func (s *WaitlistAPITestSuite) getJSON(path string) (int, map[string]any) {
	resp, err := http.Get(s.baseURL + path)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var envelope map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func (s *WaitlistAPITestSuite) TestHealthCheck() {
	status, envelope := s.getJSON("/health")

	s.Equal(http.StatusOK, status)
	s.Contains(envelope["message"], "health check completed")

	data := envelope["data"].(map[string]any)
	s.Equal(float64(1), data["database"])
	s.Equal(float64(0), data["cache"])
	s.Equal(float64(1), data["views"])
	s.Equal("closed", data["form_backend"])
}

func (s *WaitlistAPITestSuite) TestSubmitOnceThenAlreadySubmitted() {
	viewID := s.openView()
	body := map[string]string{
		"view_id":       viewID,
		"email":         "maker@example.com",
		"creatorType":   "youtuber",
		"platform":      "",
		"contentVolume": "11-50",
	}

	status, envelope := s.postJSON("/v1/waitlist", body)
	s.Equal(http.StatusOK, status)
	s.Equal("You're in! Welcome to the early access program", envelope["message"])

	data := envelope["data"].(map[string]any)
	s.Equal(viewID, data["view_id"])
	s.Equal("submitted", data["state"])
	s.Equal("success", data["feedback"].(map[string]any)["kind"])

	s.Equal(map[string]string{
		"email":         "maker@example.com",
		"creatorType":   "youtuber",
		"platform":      "",
		"contentVolume": "11-50",
	}, s.backend.lastFields())

	status, envelope = s.postJSON("/v1/waitlist", body)
	s.Equal(http.StatusOK, status)
	s.Equal("You're already on the list", envelope["message"])
	s.Nil(envelope["data"].(map[string]any)["feedback"])
	s.EqualValues(1, s.backend.calls.Load())

	status, envelope = s.getJSON("/v1/waitlist/views/" + viewID)
	s.Equal(http.StatusOK, status)
	s.Equal("submitted", envelope["data"].(map[string]any)["state"])

	status, envelope = s.getJSON("/v1/waitlist/stats")
	s.Equal(http.StatusOK, status)
	stats := envelope["data"].(map[string]any)
	s.Equal(float64(1), stats["total"])
	s.Equal(float64(1), stats["unique_accepted"])
}

func (s *WaitlistAPITestSuite) TestInvalidEmailNeverReachesBackend() {
	viewID := s.openView()

	for _, email := range []string{"", "abc", "noatsign.com", "a@b.c"} {
		status, envelope := s.postJSON("/v1/waitlist", map[string]string{"view_id": viewID, "email": email})
		s.Equal(http.StatusUnprocessableEntity, status, email)
		s.Equal("Please enter a valid email", envelope["message"])

		data := envelope["data"].(map[string]any)
		s.Equal("unsubmitted", data["state"])
		s.Equal("error", data["feedback"].(map[string]any)["kind"])
	}

	s.EqualValues(0, s.backend.calls.Load())
}

func (s *WaitlistAPITestSuite) TestBackendRejectionKeepsViewOpen() {
	s.backend.respond(http.StatusUnprocessableEntity, `{"errors":[{"field":"email","code":"TYPE_EMAIL","message":"should be an email"}]}`)
	viewID := s.openView()

	status, envelope := s.postJSON("/v1/waitlist", map[string]string{"view_id": viewID, "email": "maker@example"})
	s.Equal(http.StatusUnprocessableEntity, status)
	data := envelope["data"].(map[string]any)
	s.Equal("unsubmitted", data["state"])
	s.NotEmpty(data["errors"])

	s.backend.respond(http.StatusOK, `{"ok":true}`)
	status, _ = s.postJSON("/v1/waitlist", map[string]string{"view_id": viewID, "email": "maker@example.com"})
	s.Equal(http.StatusOK, status)
	s.EqualValues(2, s.backend.calls.Load())
}

func (s *WaitlistAPITestSuite) TestBackendFailureIsBadGateway() {
	s.backend.respond(http.StatusInternalServerError, `{"error":"boom"}`)
	viewID := s.openView()

	status, envelope := s.postJSON("/v1/waitlist", map[string]string{"view_id": viewID, "email": "maker@example.com"})
	s.Equal(http.StatusBadGateway, status)
	s.Equal("unsubmitted", envelope["data"].(map[string]any)["state"])
	s.EqualValues(1, s.backend.calls.Load())
}

func (s *WaitlistAPITestSuite) TestPageFormSubmit() {
	viewID := s.openView()
	form := url.Values{
		"view_id":     {viewID},
		"email":       {"page@example.com"},
		"creatorType": {"podcaster"},
	}

	resp, err := http.Post(s.baseURL+"/waitlist", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	s.Require().NoError(err)
	s.Equal(1, doc.Find("#waitlist-success").Length())
	s.Equal(0, doc.Find("form#waitlist").Length())
	s.Equal("podcaster", s.backend.lastFields()["creatorType"])
}

func (s *WaitlistAPITestSuite) TestFeedbackAudio() {
	resp, err := http.Get(s.baseURL + "/v1/feedback/success/audio")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("audio/wav", resp.Header.Get("Content-Type"))
	head := make([]byte, 4)
	_, err = io.ReadFull(resp.Body, head)
	s.Require().NoError(err)
	s.Equal("RIFF", string(head))
}

func (s *WaitlistAPITestSuite) TestViewStoreIsInMemory() {
	_, ok := s.appConfig.Views.(*views.MemoryStore)
	s.True(ok)
}

func TestWaitlistAPISuite(t *testing.T) {
	// Skip integration tests unless explicitly requested
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run them")
	}

	suite.Run(t, new(WaitlistAPITestSuite))
}
