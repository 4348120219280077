// Package view 维护两态视图模型（首页 / 详情）与 URL 查询参数的双向同步，
// 刷新或分享链接都能复原当前视图。
package view

import (
	"log"
	"net/url"
	"strconv"
)

// View 页面视图
type View string

const (
	Home    View = "home"
	Details View = "details"
)

// State 当前视图状态，URL 查询参数是它唯一的外部表示
type State struct {
	View    View
	MovieID int // 仅 Details 视图有意义
}

// HomeState 首页状态
func HomeState() State {
	return State{View: Home}
}

// DetailsState 指定电影的详情页状态
func DetailsState(tmdbID int) State {
	return State{View: Details, MovieID: tmdbID}
}

// FromQuery 从 URL 查询参数还原视图状态。
// 非法的 id 参数（非数字）静默忽略，回退到 view 参数单独决定的视图。
func FromQuery(q url.Values) State {
	st := HomeState()

	switch View(q.Get("view")) {
	case Details:
		st.View = Details
	case Home:
		st.View = Home
	}

	if raw := q.Get("id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			log.Printf("[View] 忽略非法的 id 参数: %q", raw)
		} else {
			st.View = Details
			st.MovieID = id
		}
	}

	return st
}

// Query 把状态编码为查询参数，goHome 时不带 id
func (s State) Query() url.Values {
	q := url.Values{}
	q.Set("view", string(s.View))
	if s.View == Details && s.MovieID > 0 {
		q.Set("id", strconv.Itoa(s.MovieID))
	}
	return q
}

// URL 生成该状态对应的跳转地址
func (s State) URL() string {
	return "/?" + s.Query().Encode()
}
