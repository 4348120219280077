package handler

import (
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/user/movierec/internal/model"
	"github.com/user/movierec/internal/service"
	"github.com/user/movierec/internal/utils"
)

// MovieSuggest 搜索自动补全接口，返回快捷选择建议列表
func (h *Handler) MovieSuggest(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	if utf8.RuneCountInString(keyword) < minSearchChars {
		utils.Success(c, []model.Suggestion{})
		return
	}

	results, err := h.Movies.Search(c.Request.Context(), keyword, service.DefaultSearchLimit)
	if err != nil {
		utils.Error(c, 502, err.Error())
		return
	}
	utils.Success(c, results.Suggestions)
}
