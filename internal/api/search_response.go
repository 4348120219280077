package api

import (
	"encoding/json"
)

// SearchShape 搜索响应的形态标签
type SearchShape int

const (
	// ShapeUnrecognized 无法识别的响应，下游按空结果处理
	ShapeUnrecognized SearchShape = iota
	// ShapeProvider 上游原始形态：{"results":[{id,title,poster_path,...}]}
	ShapeProvider
	// ShapeList 已扁平化的列表形态：[{tmdb_id,title,poster_url,...}]
	ShapeList
)

// ProviderMovie 上游原始形态的条目，poster_path 只是路径片段
type ProviderMovie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
}

// ListMovie 已扁平化形态的条目，标识符可能在 tmdb_id 或 id 字段
type ListMovie struct {
	TMDBID      int    `json:"tmdb_id"`
	ID          int    `json:"id"`
	Title       string `json:"title"`
	PosterURL   string `json:"poster_url"`
	ReleaseDate string `json:"release_date"`
}

// SearchResponse 两种响应形态统一后的内部表示，下游只认它，不再碰原始 JSON
type SearchResponse struct {
	Shape    SearchShape
	Provider []ProviderMovie
	List     []ListMovie
}

// DecodeSearchResponse 识别搜索接口的响应形态。
// 判定顺序固定：先看是否为带 results 字段的对象，再看是否为纯数组，否则视为无法识别。
// 解不开的内容一律降级为空数据，不报错。
func DecodeSearchResponse(raw json.RawMessage) SearchResponse {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil && obj != nil {
		results, ok := obj["results"]
		if !ok {
			return SearchResponse{Shape: ShapeUnrecognized}
		}
		var items []ProviderMovie
		if err := json.Unmarshal(results, &items); err != nil {
			return SearchResponse{Shape: ShapeProvider}
		}
		return SearchResponse{Shape: ShapeProvider, Provider: items}
	}

	var list []ListMovie
	if err := json.Unmarshal(raw, &list); err == nil {
		return SearchResponse{Shape: ShapeList, List: list}
	}

	return SearchResponse{Shape: ShapeUnrecognized}
}
