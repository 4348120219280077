package handler

import (
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/user/movierec/internal/config"
	"github.com/user/movierec/internal/model"
	"github.com/user/movierec/internal/service"
	"github.com/user/movierec/internal/view"
)

const (
	defaultGridCols = 6
	minGridCols     = 4
	maxGridCols     = 8

	// 关键词太短时不触发搜索，只给提示
	minSearchChars = 2
)

// Category 首页分类
type Category struct {
	Key   string
	Icon  string
	Label string
	Desc  string
}

// Categories 首页可选分类，顺序即侧边栏展示顺序
var Categories = []Category{
	{"trending", "🔥", "Trending Now", "What everyone's watching right now"},
	{"popular", "⭐", "Most Popular", "Fan favorites loved by millions"},
	{"top_rated", "🏆", "Top Rated", "Critically acclaimed masterpieces"},
	{"now_playing", "🎬", "Now Playing", "Currently in theaters"},
	{"upcoming", "🎯", "Coming Soon", "Coming to theaters soon"},
}

// ValidCategory 校验首页分类取值，注册为 binding 的 moviecategory 规则
func ValidCategory(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, cat := range Categories {
		if cat.Key == val {
			return true
		}
	}
	return false
}

func findCategory(key string) Category {
	for _, cat := range Categories {
		if cat.Key == key {
			return cat
		}
	}
	return Categories[0]
}

// Handler HTTP 处理器
type Handler struct {
	Config *config.Config
	Movies *service.MovieService
}

// NewHandler 创建处理器
func NewHandler(cfg *config.Config, movies *service.MovieService) *Handler {
	return &Handler{
		Config: cfg,
		Movies: movies,
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	res := gin.H{
		"SiteName":   h.Config.SiteName,
		"Path":       c.Request.URL.Path,
		"Categories": Categories,
		"HomeURL":    view.HomeState().URL(),
	}

	for k, v := range data {
		res[k] = v
	}
	return res
}

// Index 页面入口，根据 view 参数分发到首页或详情视图
func (h *Handler) Index(c *gin.Context) {
	st := view.FromQuery(c.Request.URL.Query())
	prefs := h.loadPrefs(c)

	switch st.View {
	case view.Details:
		h.renderDetails(c, st, prefs)
	default:
		h.renderHome(c, prefs)
	}
}

// displayQuery 侧边栏表单提交的展示设置
type displayQuery struct {
	Category string `form:"category" binding:"omitempty,moviecategory"`
	Cols     int    `form:"cols" binding:"omitempty,min=4,max=8"`
}

// loadPrefs 读取展示偏好：查询参数优先，其次会话，最后默认值；
// 变更写回会话，让用户的网格设置跨页面保留
func (h *Handler) loadPrefs(c *gin.Context) model.DisplayPrefs {
	prefs := model.DisplayPrefs{Category: Categories[0].Key, GridCols: defaultGridCols}

	session := sessions.Default(c)
	if saved := session.Get("prefs"); saved != nil {
		if p, ok := saved.(model.DisplayPrefs); ok {
			prefs = p
		}
	}

	var q displayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		// 非法取值整体忽略，回退到已保存的偏好
		return prefs
	}

	changed := false
	if q.Category != "" && q.Category != prefs.Category {
		prefs.Category = q.Category
		changed = true
	}
	if q.Cols != 0 && q.Cols != prefs.GridCols {
		prefs.GridCols = q.Cols
		changed = true
	}
	if changed {
		session.Set("prefs", prefs)
		if err := session.Save(); err != nil {
			log.Printf("[Handler] 保存展示偏好失败: %v", err)
		}
	}
	return prefs
}

// renderHome 首页：有关键词走搜索模式，否则展示分类信息流
func (h *Handler) renderHome(c *gin.Context, prefs model.DisplayPrefs) {
	if keyword := strings.TrimSpace(c.Query("q")); keyword != "" {
		h.renderSearch(c, keyword, prefs)
		return
	}

	cat := findCategory(prefs.Category)
	data := gin.H{
		"Title":    cat.Label + " - " + h.Config.SiteName,
		"Mode":     "feed",
		"Keyword":  "",
		"Prefs":    prefs,
		"Category": cat,
	}

	cards, err := h.Movies.HomeFeed(c.Request.Context(), prefs.Category, service.HomeFeedLimit)
	if err != nil {
		data["Error"] = "Failed to load movies: " + err.Error()
	} else {
		data["Cards"] = cards
	}

	c.HTML(http.StatusOK, "home.html", h.RenderData(c, data))
}

// renderSearch 搜索模式
func (h *Handler) renderSearch(c *gin.Context, keyword string, prefs model.DisplayPrefs) {
	data := gin.H{
		"Title":   keyword + " - " + h.Config.SiteName,
		"Mode":    "search",
		"Prefs":   prefs,
		"Keyword": keyword,
	}

	if utf8.RuneCountInString(keyword) < minSearchChars {
		data["Prompt"] = "Type at least 2 characters to start searching..."
		c.HTML(http.StatusOK, "home.html", h.RenderData(c, data))
		return
	}

	results, err := h.Movies.Search(c.Request.Context(), keyword, service.DefaultSearchLimit)
	if err != nil {
		data["Error"] = "Search failed: " + err.Error()
	} else {
		data["Results"] = results
		// 没有任何建议说明关键词没有精确命中，网格里展示的是回退结果
		data["NoExactMatch"] = len(results.Suggestions) == 0
	}

	c.HTML(http.StatusOK, "home.html", h.RenderData(c, data))
}

// renderDetails 详情页：详情拉取失败只报错不渲染，推荐各级串行回退
func (h *Handler) renderDetails(c *gin.Context, st view.State, prefs model.DisplayPrefs) {
	data := gin.H{
		"Title": "Movie Details - " + h.Config.SiteName,
		"Prefs": prefs,
	}

	if st.MovieID <= 0 {
		data["NoSelection"] = true
		c.HTML(http.StatusOK, "details.html", h.RenderData(c, data))
		return
	}

	detail, err := h.Movies.Detail(c.Request.Context(), st.MovieID)
	if err != nil {
		// 详情失败就到此为止，不再发起推荐请求
		data["Error"] = "Could not load details: " + err.Error()
		c.HTML(http.StatusOK, "details.html", h.RenderData(c, data))
		return
	}

	recs := h.Movies.Recommend(c.Request.Context(), st.MovieID, detail.Title)

	if detail.Title != "" {
		data["Title"] = detail.Title + " - " + h.Config.SiteName
	}
	data["Movie"] = detail
	data["Recs"] = recs

	c.HTML(http.StatusOK, "details.html", h.RenderData(c, data))
}
