package handler_test

import (
	"encoding/gob"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/movierec/internal/api"
	"github.com/user/movierec/internal/config"
	"github.com/user/movierec/internal/handler"
	"github.com/user/movierec/internal/model"
	"github.com/user/movierec/internal/router"
	"github.com/user/movierec/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
	gob.Register(model.DisplayPrefs{})
	router.RegisterValidations()
}

// testApp 组装一套带真实模板的完整路由，后端指向可编程的假 API
type testApp struct {
	engine    *gin.Engine
	recHits   atomic.Int64
	detail    func(w http.ResponseWriter)
	homeBody  string
	searchRaw string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	app := &testApp{
		homeBody:  `[]`,
		searchRaw: `{"results":[]}`,
		detail: func(w http.ResponseWriter) {
			w.Write([]byte(`{"tmdb_id":42,"title":"Avengers","overview":"Earth's mightiest heroes.","vote_average":8.0,"vote_count":1000}`))
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/home", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(app.homeBody))
	})
	mux.HandleFunc("/tmdb/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(app.searchRaw))
	})
	mux.HandleFunc("/movie/id/", func(w http.ResponseWriter, r *http.Request) {
		app.detail(w)
	})
	mux.HandleFunc("/movie/search", func(w http.ResponseWriter, r *http.Request) {
		app.recHits.Add(1)
		w.Write([]byte(`{"tfidf_recommendations":[],"genre_recommendations":[]}`))
	})
	mux.HandleFunc("/recommend/genre", func(w http.ResponseWriter, r *http.Request) {
		app.recHits.Add(1)
		w.Write([]byte(`[]`))
	})

	upstream := httptest.NewServer(mux)
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		SiteName:     "Movie Recommender",
		AppSecret:    "test-secret",
		APIBaseURL:   upstream.URL,
		ImageBaseURL: "https://image.tmdb.org/t/p/w500",
	}
	movies := service.NewMovieService(api.NewClient(cfg.APIBaseURL), cfg.ImageBaseURL)
	h := handler.NewHandler(cfg, movies)

	r := gin.New()
	store := cookie.NewStore([]byte(cfg.AppSecret))
	r.Use(sessions.Sessions("movierec", store))
	r.HTMLRender = router.LoadTemplates("../../web/templates")
	router.RegisterRoutes(r, h)

	app.engine = r
	return app
}

func (a *testApp) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	a.engine.ServeHTTP(w, req)
	return w
}

func TestHomeFeedPage(t *testing.T) {
	app := newTestApp(t)
	app.homeBody = `[{"tmdb_id":1,"title":"Alpha Movie","vote_average":8.2}]`

	w := app.get(t, "/")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Alpha Movie")
	assert.Contains(t, body, "watching right now")
	assert.Contains(t, body, "rating-high")
}

func TestHomeFeedEmptyShowsPlaceholder(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/")

	assert.Contains(t, w.Body.String(), "No movies found")
}

func TestSearchTooShortShowsPrompt(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/?q=a")

	assert.Contains(t, w.Body.String(), "Type at least 2 characters")
}

func TestSearchRendersResults(t *testing.T) {
	app := newTestApp(t)
	app.searchRaw = `{"results":[{"id":99,"title":"Avengers","poster_path":"/x.jpg","release_date":"2012-04-25"}]}`

	w := app.get(t, "/?q=aveng")

	body := w.Body.String()
	assert.Contains(t, body, "Avengers (2012)")
	assert.Contains(t, body, "https://image.tmdb.org/t/p/w500/x.jpg")
	assert.NotContains(t, body, "No exact matches")
}

func TestSearchNoMatchStillShowsFallback(t *testing.T) {
	app := newTestApp(t)
	// 上游什么都没给，建议为空时要出"无精确匹配"提示
	w := app.get(t, "/?q=zzzzzz")

	assert.Contains(t, w.Body.String(), "No exact matches found")
}

func TestDetailsPage(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/?view=details&id=42")

	body := w.Body.String()
	assert.Contains(t, body, "Avengers")
	assert.Contains(t, body, "Earth&#39;s mightiest heroes.")
}

func TestDetailsWithoutSelection(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/?view=details")

	body := w.Body.String()
	assert.Contains(t, body, "No movie selected")
	assert.Contains(t, body, "Back to Home")
}

func TestDetailsFetchFailureStopsThere(t *testing.T) {
	app := newTestApp(t)
	app.detail = func(w http.ResponseWriter) {
		http.Error(w, "movie not found", http.StatusNotFound)
	}

	w := app.get(t, "/?view=details&id=42")

	assert.Contains(t, w.Body.String(), "Could not load details: HTTP 404:")
	// 详情失败后不得发起任何推荐请求
	assert.Equal(t, int64(0), app.recHits.Load())
}

func TestSuggestAPI(t *testing.T) {
	app := newTestApp(t)
	app.searchRaw = `{"results":[{"id":99,"title":"Avengers","release_date":"2012-04-25"}]}`

	w := app.get(t, "/api/movies/suggest?q=aveng")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, "Avengers (2012)")
}

func TestSuggestAPIShortQuery(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/api/movies/suggest?q=a")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestCategorySwitch(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/?category=top_rated")

	assert.Contains(t, w.Body.String(), "Critically acclaimed masterpieces")
}

func TestInvalidCategoryIgnored(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/?category=bogus")

	// 非法分类整体忽略，回退到默认分类
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "watching right now")
}
