package model

// Card 电影卡片，所有网格展示的最小单元
type Card struct {
	TMDBID    int     `json:"tmdb_id"`
	Title     string  `json:"title"`
	PosterURL string  `json:"poster_url,omitempty"` // 为空时渲染占位图
	Rating    float64 `json:"vote_average,omitempty"`
}

// Suggestion 快捷选择建议，点击后直达详情页
type Suggestion struct {
	Label  string `json:"label"` // 如 "Avengers (2012)"
	TMDBID int    `json:"tmdb_id"`
}

// SearchResultSet 单次搜索产生的结果集
type SearchResultSet struct {
	Suggestions []Suggestion `json:"suggestions"`
	Cards       []Card       `json:"cards"`
}

// Genre 类型标签
type Genre struct {
	Name string `json:"name"`
}

// MovieDetail 电影详情（远端 API 原样透传，缺字段按空值渲染）
type MovieDetail struct {
	TMDBID      int     `json:"tmdb_id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"` // 分钟
	Genres      []Genre `json:"genres"`
	PosterURL   string  `json:"poster_url"`
	BackdropURL string  `json:"backdrop_url"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// TFIDFItem TF-IDF 相似推荐条目，内嵌电影引用
type TFIDFItem struct {
	Title string `json:"title"`
	TMDB  *Card  `json:"tmdb"`
}

// RecommendationBundle 标题检索返回的推荐组合包
type RecommendationBundle struct {
	TFIDF []TFIDFItem `json:"tfidf_recommendations"`
	Genre []Card      `json:"genre_recommendations"`
}

// DisplayPrefs 会话中保存的展示偏好（侧边栏设置）
type DisplayPrefs struct {
	Category string // 首页分类
	GridCols int    // 网格列数 4-8
}
