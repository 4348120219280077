package service

import (
	"strings"

	"github.com/user/movierec/internal/api"
	"github.com/user/movierec/internal/model"
)

const (
	// DefaultSearchLimit 搜索结果默认最多返回的卡片数
	DefaultSearchLimit = 24
	maxSuggestions     = 10
)

// Normalizer 搜索结果归一化器。
// 把搜索接口的两种响应形态整理成统一的结果集：
// 先丢掉没有标题或标识符的条目，再按关键词做包含匹配，
// 没有任何命中时回退到全量列表，避免上游明明有数据却给用户一片空白。
type Normalizer struct {
	ImageBase string // 补全 poster_path 用的图片源前缀
}

// searchItem 归一化后的中间条目
type searchItem struct {
	tmdbID      int
	title       string
	posterURL   string
	releaseDate string
}

// Normalize 纯函数：相同输入必得相同输出，不做任何 IO，也不会失败。
// limit <= 0 时使用默认上限。
func (n Normalizer) Normalize(resp api.SearchResponse, keyword string, limit int) model.SearchResultSet {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	items := n.collect(resp)
	if items == nil {
		return model.SearchResultSet{
			Suggestions: []model.Suggestion{},
			Cards:       []model.Card{},
		}
	}

	// 关键词包含匹配，保持上游顺序
	keywordLower := strings.ToLower(strings.TrimSpace(keyword))
	var matched []searchItem
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.title), keywordLower) {
			matched = append(matched, it)
		}
	}

	// 没有命中时回退到未过滤的全量列表
	finalList := matched
	if len(finalList) == 0 {
		finalList = items
	}

	suggestions := make([]model.Suggestion, 0, maxSuggestions)
	for _, it := range finalList {
		if len(suggestions) >= maxSuggestions {
			break
		}
		label := it.title
		if year := releaseYear(it.releaseDate); year != "" {
			label = it.title + " (" + year + ")"
		}
		suggestions = append(suggestions, model.Suggestion{Label: label, TMDBID: it.tmdbID})
	}

	cards := make([]model.Card, 0, limit)
	for _, it := range finalList {
		if len(cards) >= limit {
			break
		}
		// 搜索结果不带评分
		cards = append(cards, model.Card{
			TMDBID:    it.tmdbID,
			Title:     it.title,
			PosterURL: it.posterURL,
		})
	}

	return model.SearchResultSet{Suggestions: suggestions, Cards: cards}
}

// collect 把两种形态的条目收敛成中间表示，无法识别返回 nil。
// 标题为空或拿不到标识符的条目直接丢弃（不可点击，没有导航价值）。
func (n Normalizer) collect(resp api.SearchResponse) []searchItem {
	switch resp.Shape {
	case api.ShapeProvider:
		items := make([]searchItem, 0, len(resp.Provider))
		for _, m := range resp.Provider {
			title := strings.TrimSpace(m.Title)
			if title == "" || m.ID == 0 {
				continue
			}
			posterURL := ""
			if m.PosterPath != "" {
				posterURL = n.ImageBase + m.PosterPath
			}
			items = append(items, searchItem{
				tmdbID:      m.ID,
				title:       title,
				posterURL:   posterURL,
				releaseDate: m.ReleaseDate,
			})
		}
		return items

	case api.ShapeList:
		items := make([]searchItem, 0, len(resp.List))
		for _, m := range resp.List {
			id := m.TMDBID
			if id == 0 {
				id = m.ID
			}
			title := strings.TrimSpace(m.Title)
			if title == "" || id == 0 {
				continue
			}
			items = append(items, searchItem{
				tmdbID:      id,
				title:       title,
				posterURL:   m.PosterURL,
				releaseDate: m.ReleaseDate,
			})
		}
		return items
	}
	return nil
}

// releaseYear 取 release_date 的前 4 位作为年份
func releaseYear(date string) string {
	if len(date) > 4 {
		return date[:4]
	}
	return date
}

// TFIDFToCards 把 TF-IDF 推荐条目里嵌套的电影引用拍平成卡片
func TFIDFToCards(items []model.TFIDFItem) []model.Card {
	cards := make([]model.Card, 0, len(items))
	for _, it := range items {
		if it.TMDB == nil || it.TMDB.TMDBID == 0 {
			continue
		}
		title := it.TMDB.Title
		if title == "" {
			title = it.Title
		}
		if title == "" {
			title = "Untitled"
		}
		cards = append(cards, model.Card{
			TMDBID:    it.TMDB.TMDBID,
			Title:     title,
			PosterURL: it.TMDB.PosterURL,
		})
	}
	return cards
}
