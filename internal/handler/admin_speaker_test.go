package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openconf/registration-backend/internal/model"
	"github.com/openconf/registration-backend/internal/repository"
)

type fakeSpeakerStore struct {
	speakers  map[uint64]model.Speaker
	nextID    uint64
	getErr    error
	updateErr error
}

func newFakeSpeakerStore() *fakeSpeakerStore {
	return &fakeSpeakerStore{speakers: map[uint64]model.Speaker{}, nextID: 1}
}

func (f *fakeSpeakerStore) Create(_ context.Context, s *model.Speaker) error {
	s.ID = f.nextID
	f.nextID++
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	f.speakers[s.ID] = *s
	return nil
}

func (f *fakeSpeakerStore) Update(_ context.Context, s *model.Speaker) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.speakers[s.ID]; !ok {
		return repository.ErrNotFound
	}
	f.speakers[s.ID] = *s
	return nil
}

func (f *fakeSpeakerStore) GetByID(_ context.Context, id uint64) (model.Speaker, error) {
	if f.getErr != nil {
		return model.Speaker{}, f.getErr
	}
	s, ok := f.speakers[id]
	if !ok {
		return model.Speaker{}, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSpeakerStore) List(_ context.Context) ([]model.Speaker, error) {
	out := []model.Speaker{}
	for _, s := range f.speakers {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSpeakerStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.speakers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.speakers, id)
	return nil
}

type fakeTalkStore struct{}

func (fakeTalkStore) Create(_ context.Context, _ *model.Talk) error { return nil }
func (fakeTalkStore) Update(_ context.Context, _ *model.Talk) error { return nil }
func (fakeTalkStore) List(_ context.Context) ([]model.Talk, error)  { return nil, nil }
func (fakeTalkStore) Delete(_ context.Context, _ uint64) error      { return nil }

type fakeRegAdminStore struct{}

func (fakeRegAdminStore) List(_ context.Context) ([]model.Registration, error) { return nil, nil }
func (fakeRegAdminStore) Delete(_ context.Context, _ string) error             { return nil }

func doUpdateSpeaker(h *AdminHandler, id, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/admin/speakers/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	_ = h.UpdateSpeaker(c)
	return rec
}

func TestUpdateSpeakerEchoesWrittenFieldsWhenReadBackFails(t *testing.T) {
	store := newFakeSpeakerStore()
	h := NewAdminHandler(store, fakeTalkStore{}, fakeRegAdminStore{})

	s := model.Speaker{Name: "Ada Lovelace", Title: "Engineer"}
	require.NoError(t, store.Create(context.Background(), &s))

	store.getErr = errors.New("read failed")
	rec := doUpdateSpeaker(h, "1", `{"name":"Ada King","title":"Countess of Lovelace"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Speaker
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(1), got.ID)
	assert.Equal(t, "Ada King", got.Name, "body reflects the stored update, never a zero value")
}

func TestUpdateSpeakerNotFound(t *testing.T) {
	h := NewAdminHandler(newFakeSpeakerStore(), fakeTalkStore{}, fakeRegAdminStore{})

	rec := doUpdateSpeaker(h, "42", `{"name":"Nobody Here","title":"Ghost"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "speaker not found", resp["error"])
}
