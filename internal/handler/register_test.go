package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openconf/registration-backend/internal/model"
	"github.com/openconf/registration-backend/internal/ratelimit"
	"github.com/openconf/registration-backend/internal/repository"
)

// fakeStore backs the handler tests with an in-memory unique-email table so
// duplicate detection behaves like the real constraint, races included.
type fakeStore struct {
	mu     sync.Mutex
	emails map[string]bool
	fail   error
}

func newFakeStore() *fakeStore { return &fakeStore{emails: map[string]bool{}} }

func (s *fakeStore) Insert(_ context.Context, reg *model.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	if s.emails[reg.Email] {
		return repository.ErrDuplicateEmail
	}
	s.emails[reg.Email] = true
	reg.ID = "reg-" + reg.Email
	reg.CreatedAt = time.Now()
	return nil
}

func newTestHandler(store RegistrationStore) *RegisterHandler {
	return NewRegisterHandler(store, ratelimit.NewMemory(10, time.Minute))
}

func doRegister(h *RegisterHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.Register(e.NewContext(req, rec))
	return rec
}

const validBody = `{"name":"Jane Doe","email":"jane@example.com","ticketType":"standard"}`

func TestRegisterSuccess(t *testing.T) {
	h := newTestHandler(newFakeStore())
	rec := doRegister(h, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["registrationId"])
	assert.Len(t, resp, 1, "success body carries the id and nothing else")
}

func TestRegisterValidationFailure(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(store)
	rec := doRegister(h, `{"name":"John123","email":"not-an-email","ticketType":"gold"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Error       string            `json:"error"`
		FieldErrors map[string]string `json:"fieldErrors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	assert.Contains(t, resp.FieldErrors, "name")
	assert.Contains(t, resp.FieldErrors, "email")
	assert.Contains(t, resp.FieldErrors, "ticketType")
	assert.Empty(t, store.emails, "no store access on a validation reject")
}

func TestRegisterMalformedBody(t *testing.T) {
	h := newTestHandler(newFakeStore())
	rec := doRegister(h, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newTestHandler(newFakeStore())

	rec := doRegister(h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same normalized email, different everything else.
	rec = doRegister(h, `{"name":"Someone Else","email":" JANE@example.com ","phone":"123","ticketType":"vip"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "already registered", resp["error"])
	assert.NotContains(t, resp, "fieldErrors", "duplicate response never names the matching field")
}

func TestRegisterConcurrentSameEmail(t *testing.T) {
	h := NewRegisterHandler(newFakeStore(), ratelimit.NewMemory(100, time.Minute))

	const parallel = 8
	codes := make(chan int, parallel)
	var wg sync.WaitGroup
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes <- doRegister(h, validBody).Code
		}()
	}
	wg.Wait()
	close(codes)

	created, conflict := 0, 0
	for code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflict++
		}
	}
	assert.Equal(t, 1, created, "exactly one concurrent submission wins")
	assert.Equal(t, parallel-1, conflict)
}

func TestRegisterStoreError(t *testing.T) {
	store := newFakeStore()
	store.fail = errors.New("pq: connection refused to db.internal:5432 (credentials: svc_role)")
	h := newTestHandler(store)

	rec := doRegister(h, validBody)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := rec.Body.String()
	assert.NotContains(t, body, "pq:", "internal error text never reaches the caller")
	assert.NotContains(t, body, "svc_role")
	var resp map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.NotEmpty(t, resp["error"])
}

func TestRegisterRateLimited(t *testing.T) {
	h := NewRegisterHandler(newFakeStore(), ratelimit.NewMemory(2, time.Minute))

	bodies := []string{
		`{"name":"A One","email":"a1@example.com","ticketType":"standard"}`,
		`{"name":"A Two","email":"a2@example.com","ticketType":"standard"}`,
		`{"name":"A Three","email":"a3@example.com","ticketType":"standard"}`,
	}
	var rec *httptest.ResponseRecorder
	for _, b := range bodies {
		rec = doRegister(h, b)
	}

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	store := h.Store.(*fakeStore)
	assert.Len(t, store.emails, 2, "no store access past the limit")
}

func TestRegisterLimiterKeyedByClient(t *testing.T) {
	h := NewRegisterHandler(newFakeStore(), ratelimit.NewMemory(1, time.Minute))
	e := echo.New()

	send := func(ip, body string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		_ = h.Register(e.NewContext(req, rec))
		return rec.Code
	}

	require.Equal(t, http.StatusCreated, send("10.0.0.1", `{"name":"B One","email":"b1@example.com","ticketType":"vip"}`))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1", `{"name":"B Two","email":"b2@example.com","ticketType":"vip"}`))
	assert.Equal(t, http.StatusCreated, send("10.0.0.2", `{"name":"B Three","email":"b3@example.com","ticketType":"vip"}`),
		"a different client address has its own quota")
}

func TestRegisterPublishesAfterSuccess(t *testing.T) {
	h := newTestHandler(newFakeStore())

	published := make(chan model.Registration, 2)
	h.Publish = func(_ context.Context, reg model.Registration) {
		published <- reg
	}

	doRegister(h, `{"name":"John123","email":"x","ticketType":"vip"}`) // rejected
	select {
	case reg := <-published:
		t.Fatalf("published a rejected submission: %+v", reg)
	case <-time.After(50 * time.Millisecond):
	}

	rec := doRegister(h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	select {
	case reg := <-published:
		assert.Equal(t, "jane@example.com", reg.Email)
	case <-time.After(time.Second):
		t.Fatal("no publish after a successful insert")
	}
}

func TestRegisterResponseDoesNotWaitOnPublisher(t *testing.T) {
	h := newTestHandler(newFakeStore())

	// Simulates an unreachable broker: the publish blocks until released.
	release := make(chan struct{})
	done := make(chan struct{})
	h.Publish = func(_ context.Context, _ model.Registration) {
		<-release
		close(done)
	}

	start := time.Now()
	rec := doRegister(h, validBody)
	elapsed := time.Since(start)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Less(t, elapsed, 500*time.Millisecond, "the 201 must not block on the broker")

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher never ran")
	}
}
