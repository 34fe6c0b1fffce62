package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/internal/sanitizer"
	"github.com/joefazee/sportsbook/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewHandler(svc, sanitizer.NewHTMLStripper())
	r.GET("/sports", h.GetSports)
	r.GET("/sports/:id/teams", h.GetTeams)
	r.GET("/games", h.GetGames)
	r.GET("/games/:id", h.GetGameByID)
	r.POST("/admin/games", h.CreateGame)
	r.PATCH("/admin/games/:id/odds", h.UpdateOdds)
	return r
}

func send(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		raw, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_GetSports(t *testing.T) {
	svc := new(MockService)
	svc.On("ListSports", mock.Anything).Return([]SportResponse{{Name: "Basketball"}, {Name: "Hockey"}}, nil)

	w := send(setupRouter(svc), http.MethodGet, "/sports", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body.Meta["count"])
}

func TestHandler_GetTeams(t *testing.T) {
	t.Run("Unknown sport", func(t *testing.T) {
		svc := new(MockService)
		id := uuid.New()
		svc.On("ListTeams", mock.Anything, id).Return([]TeamResponse(nil), models.ErrRecordNotFound)

		w := send(setupRouter(svc), http.MethodGet, "/sports/"+id.String()+"/teams", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid id", func(t *testing.T) {
		w := send(setupRouter(new(MockService)), http.MethodGet, "/sports/nba/teams", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetGames(t *testing.T) {
	t.Run("Filtered", func(t *testing.T) {
		svc := new(MockService)
		sportID := uuid.New()
		svc.On("ListGames", mock.Anything, mock.MatchedBy(func(f *GameFilters) bool {
			return f.Status == "upcoming" && f.sportID == sportID
		})).Return([]GameResponse{{ID: uuid.New()}}, int64(1), nil)

		w := send(setupRouter(svc), http.MethodGet, "/games?status=upcoming&sport_id="+sportID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Bad filters", func(t *testing.T) {
		svc := new(MockService)

		w := send(setupRouter(svc), http.MethodGet, "/games?status=postponed&sport_id=x", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "sport_id")
		svc.AssertNotCalled(t, "ListGames", mock.Anything, mock.Anything)
	})
}

func TestHandler_CreateGame(t *testing.T) {
	valid := CreateGameRequest{
		SportID: uuid.New(), HomeTeamID: uuid.New(), AwayTeamID: uuid.New(),
		HomeOdds: -150, AwayOdds: 130, ScheduledAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	t.Run("Created", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CreateGame", mock.Anything, mock.Anything).Return(&GameResponse{ID: uuid.New()}, nil)

		w := send(setupRouter(svc), http.MethodPost, "/admin/games", valid)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("External id is stripped", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CreateGame", mock.Anything, mock.MatchedBy(func(r *CreateGameRequest) bool {
			return r.ExternalID != nil && *r.ExternalID == "evt-42"
		})).Return(&GameResponse{ID: uuid.New()}, nil)

		req := valid
		ext := "<b>evt-42</b>"
		req.ExternalID = &ext

		w := send(setupRouter(svc), http.MethodPost, "/admin/games", req)
		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Same team twice", func(t *testing.T) {
		svc := new(MockService)
		req := valid
		req.AwayTeamID = req.HomeTeamID

		w := send(setupRouter(svc), http.MethodPost, "/admin/games", req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		svc.AssertNotCalled(t, "CreateGame", mock.Anything, mock.Anything)
	})

	t.Run("Teams outside sport", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CreateGame", mock.Anything, mock.Anything).Return(nil, models.ErrInvalidGameTeams)

		w := send(setupRouter(svc), http.MethodPost, "/admin/games", valid)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_UpdateOdds(t *testing.T) {
	id := uuid.New()

	t.Run("Game started", func(t *testing.T) {
		svc := new(MockService)
		svc.On("UpdateOdds", mock.Anything, id, &UpdateOddsRequest{HomeOdds: 120, AwayOdds: -140}).Return(nil, models.ErrGameNotBettable)

		w := send(setupRouter(svc), http.MethodPatch, "/admin/games/"+id.String()+"/odds", UpdateOddsRequest{HomeOdds: 120, AwayOdds: -140})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Zero odds", func(t *testing.T) {
		svc := new(MockService)

		w := send(setupRouter(svc), http.MethodPatch, "/admin/games/"+id.String()+"/odds", UpdateOddsRequest{HomeOdds: 120})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
