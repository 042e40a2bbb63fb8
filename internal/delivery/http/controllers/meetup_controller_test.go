package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meetupscheduler/internal/delivery/http/helpers"
	"meetupscheduler/internal/delivery/http/middleware"
	"meetupscheduler/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMeetupService struct {
	createErr    error
	getResult    *domain.Meetup
	getErr       error
	updateResult *domain.Meetup
	updateErr    error
	deleteErr    error
	listResult   []*domain.Meetup
	listErr      error

	lastCreated     *domain.Meetup
	lastUpdateID    string
	lastUpdateActor string
	lastUpdate      domain.MeetupUpdate
	lastDeleteID    string
	lastDeleteActor string
	lastListDay     *time.Time
	lastListParams  domain.PaginationParams
}

func (f *fakeMeetupService) Create(ctx context.Context, meetup *domain.Meetup) error {
	f.lastCreated = meetup
	if f.createErr != nil {
		return f.createErr
	}
	meetup.ID = testMeetupID
	return nil
}

func (f *fakeMeetupService) GetByID(ctx context.Context, id string) (*domain.Meetup, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeMeetupService) Update(ctx context.Context, meetupID, actorID string, upd domain.MeetupUpdate) (*domain.Meetup, error) {
	f.lastUpdateID = meetupID
	f.lastUpdateActor = actorID
	f.lastUpdate = upd
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

func (f *fakeMeetupService) Delete(ctx context.Context, meetupID, actorID string) error {
	f.lastDeleteID = meetupID
	f.lastDeleteActor = actorID
	return f.deleteErr
}

func (f *fakeMeetupService) ListByDay(ctx context.Context, day *time.Time, p domain.PaginationParams) ([]*domain.Meetup, error) {
	f.lastListDay = day
	f.lastListParams = p
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func authedRequest(method, target string, body []byte, userID string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if userID != "" {
		r = r.WithContext(middleware.SetUserID(r.Context(), userID))
	}
	return r
}

func TestMeetupController_Create(t *testing.T) {
	futureDate := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	t.Run("created", func(t *testing.T) {
		svc := &fakeMeetupService{}
		ctrl := NewMeetupController(testLogger, svc)
		rec := httptest.NewRecorder()

		body, _ := json.Marshal(CreateMeetupRequest{
			Title:       "Go Hack Night",
			Description: "Talks and pizza",
			Location:    "Room 42",
			Date:        futureDate,
		})
		ctrl.Create(rec, authedRequest(http.MethodPost, "/meetups", body, "org-1"))

		require.Equal(t, http.StatusCreated, rec.Code)
		data, apiErr := decodeEnvelope(t, rec)
		require.Nil(t, apiErr)
		var got domain.Meetup
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "Go Hack Night", got.Title)
		assert.Equal(t, "org-1", got.OrganizerID)
		require.NotNil(t, svc.lastCreated)
		assert.Equal(t, "org-1", svc.lastCreated.OrganizerID)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := NewMeetupController(testLogger, &fakeMeetupService{})
		rec := httptest.NewRecorder()

		body, _ := json.Marshal(CreateMeetupRequest{Title: "X", Description: "Y", Location: "Z", Date: futureDate})
		ctrl.Create(rec, authedRequest(http.MethodPost, "/meetups", body, ""))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := NewMeetupController(testLogger, &fakeMeetupService{})
		rec := httptest.NewRecorder()

		body, _ := json.Marshal(CreateMeetupRequest{Title: "Go Hack Night"})
		ctrl.Create(rec, authedRequest(http.MethodPost, "/meetups", body, "org-1"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		_, apiErr := decodeEnvelope(t, rec)
		require.NotNil(t, apiErr)
		assert.Equal(t, helpers.ErrCodeBadRequest, apiErr.Code)
	})

	t.Run("date in the past", func(t *testing.T) {
		svc := &fakeMeetupService{createErr: fmt.Errorf("meetup date not in the future: %w", domain.ErrInvalidState)}
		ctrl := NewMeetupController(testLogger, svc)
		rec := httptest.NewRecorder()

		body, _ := json.Marshal(CreateMeetupRequest{Title: "X", Description: "Y", Location: "Z", Date: futureDate})
		ctrl.Create(rec, authedRequest(http.MethodPost, "/meetups", body, "org-1"))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := NewMeetupController(testLogger, &fakeMeetupService{})
		rec := httptest.NewRecorder()

		ctrl.Create(rec, authedRequest(http.MethodPost, "/meetups", []byte("{oops"), "org-1"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMeetupController_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakeMeetupService{getResult: &domain.Meetup{ID: testMeetupID, Title: "Go Hack Night"}}
		ctrl := NewMeetupController(testLogger, svc)
		rec := httptest.NewRecorder()

		r := authedRequest(http.MethodGet, "/meetups/"+testMeetupID, nil, "user-1")
		r.SetPathValue("meetupID", testMeetupID)
		ctrl.Get(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
		data, apiErr := decodeEnvelope(t, rec)
		require.Nil(t, apiErr)
		var got domain.Meetup
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "Go Hack Night", got.Title)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeMeetupService{getErr: domain.ErrNotFound}
		ctrl := NewMeetupController(testLogger, svc)
		rec := httptest.NewRecorder()

		r := authedRequest(http.MethodGet, "/meetups/"+testMeetupID, nil, "user-1")
		r.SetPathValue("meetupID", testMeetupID)
		ctrl.Get(rec, r)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMeetupController_List(t *testing.T) {
	t.Run("day filter and pagination", func(t *testing.T) {
		svc := &fakeMeetupService{listResult: []*domain.Meetup{{ID: testMeetupID, Title: "Go Hack Night"}}}
		ctrl := NewMeetupController(testLogger, svc)
		rec := httptest.NewRecorder()

		ctrl.List(rec, authedRequest(http.MethodGet, "/meetups?date=2026-05-12&page=2", nil, "user-1"))

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.lastListDay)
		assert.Equal(t, time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC), *svc.lastListDay)
		assert.Equal(t, 2, svc.lastListParams.Page)
	})

	t.Run("invalid date", func(t *testing.T) {
		ctrl := NewMeetupController(testLogger, &fakeMeetupService{})
		rec := httptest.NewRecorder()

		ctrl.List(rec, authedRequest(http.MethodGet, "/meetups?date=12-05-2026", nil, "user-1"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no filter lists all", func(t *testing.T) {
		svc := &fakeMeetupService{listResult: []*domain.Meetup{}}
		ctrl := NewMeetupController(testLogger, svc)
		rec := httptest.NewRecorder()

		ctrl.List(rec, authedRequest(http.MethodGet, "/meetups", nil, "user-1"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, svc.lastListDay)
	})
}

func TestMeetupController_Update(t *testing.T) {
	newTitle := "Renamed Meetup"

	tests := []struct {
		name       string
		svc        *fakeMeetupService
		wantStatus int
	}{
		{
			name:       "updated",
			svc:        &fakeMeetupService{updateResult: &domain.Meetup{ID: testMeetupID, Title: newTitle}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "forbidden for non-organizer",
			svc:        &fakeMeetupService{updateErr: fmt.Errorf("only the organizer may modify the meetup: %w", domain.ErrForbidden)},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "past meetup",
			svc:        &fakeMeetupService{updateErr: fmt.Errorf("meetup already past: %w", domain.ErrInvalidState)},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "not found",
			svc:        &fakeMeetupService{updateErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewMeetupController(testLogger, tt.svc)
			rec := httptest.NewRecorder()

			body, _ := json.Marshal(UpdateMeetupRequest{Title: &newTitle})
			r := authedRequest(http.MethodPut, "/meetups/"+testMeetupID, body, "org-1")
			r.SetPathValue("meetupID", testMeetupID)
			ctrl.Update(rec, r)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, testMeetupID, tt.svc.lastUpdateID)
				assert.Equal(t, "org-1", tt.svc.lastUpdateActor)
				require.NotNil(t, tt.svc.lastUpdate.Title)
				assert.Equal(t, newTitle, *tt.svc.lastUpdate.Title)
			}
		})
	}
}

func TestMeetupController_Delete(t *testing.T) {
	tests := []struct {
		name       string
		svc        *fakeMeetupService
		wantStatus int
	}{
		{
			name:       "deleted",
			svc:        &fakeMeetupService{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "forbidden for non-organizer",
			svc:        &fakeMeetupService{deleteErr: fmt.Errorf("only the organizer may modify the meetup: %w", domain.ErrForbidden)},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "past meetup",
			svc:        &fakeMeetupService{deleteErr: fmt.Errorf("meetup already past: %w", domain.ErrInvalidState)},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "not found",
			svc:        &fakeMeetupService{deleteErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewMeetupController(testLogger, tt.svc)
			rec := httptest.NewRecorder()

			r := authedRequest(http.MethodDelete, "/meetups/"+testMeetupID, nil, "org-1")
			r.SetPathValue("meetupID", testMeetupID)
			ctrl.Delete(rec, r)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, testMeetupID, tt.svc.lastDeleteID)
				assert.Equal(t, "org-1", tt.svc.lastDeleteActor)
			}
		})
	}
}
