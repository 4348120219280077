package router

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/user/movierec/internal/handler"
	"github.com/user/movierec/internal/view"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 页面入口，首页 / 详情都由 view 查询参数决定
	r.GET("/", h.Index)

	// ==================== JSON API ====================
	api := r.Group("/api")
	{
		api.GET("/movies/suggest", h.MovieSuggest)
	}
}

// RegisterValidations 注册自定义 binding 校验规则
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("moviecategory", handler.ValidCategory)
	}
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layout := templatesDir + "/layouts/base.html"
	partials := []string{
		templatesDir + "/partials/sidebar.html",
		templatesDir + "/partials/grid.html",
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0, len(partials)+2)
		files = append(files, layout)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	// 模板函数
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"detailURL": func(tmdbID int) string {
			return view.DetailsState(tmdbID).URL()
		},
		"ratingClass": func(rating float64) string {
			switch {
			case rating >= 7:
				return "rating-high"
			case rating >= 5:
				return "rating-medium"
			default:
				return "rating-low"
			}
		},
	}

	// 注册所有页面模板
	pages := []string{"home", "details"}

	for _, page := range pages {
		viewPath := templatesDir + "/pages/" + page + ".html"
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath)...)
	}

	return r
}
