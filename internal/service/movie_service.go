package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/user/movierec/internal/api"
	"github.com/user/movierec/internal/model"
	"github.com/user/movierec/internal/utils"
)

const (
	// HomeFeedLimit 首页分类一次拉取的卡片数
	HomeFeedLimit = 24

	tfidfTopN        = 12
	bundleGenreLimit = 12
	genreOnlyLimit   = 18

	searchCacheSize = 500
	searchCacheTTL  = 30 * time.Second
)

// MovieService 封装远端电影 API 的各业务调用
type MovieService struct {
	client      *api.Client
	normalizer  Normalizer
	searchCache *utils.SearchCache[model.SearchResultSet]
}

// NewMovieService 创建电影服务
func NewMovieService(client *api.Client, imageBase string) *MovieService {
	return &MovieService{
		client:      client,
		normalizer:  Normalizer{ImageBase: imageBase},
		searchCache: utils.NewSearchCache[model.SearchResultSet](searchCacheSize, searchCacheTTL),
	}
}

// Search 调用搜索接口并归一化为结果集，按关键词短期缓存（自动补全会高频复用）
func (s *MovieService) Search(ctx context.Context, keyword string, limit int) (model.SearchResultSet, error) {
	keyword = strings.TrimSpace(keyword)
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	cacheKey := strings.ToLower(keyword) + "|" + strconv.Itoa(limit)
	if cached, ok := s.searchCache.Get(cacheKey); ok {
		return cached, nil
	}

	raw, err := s.client.GetJSON(ctx, "/tmdb/search", map[string]string{"query": keyword})
	if err != nil {
		return model.SearchResultSet{}, err
	}

	results := s.normalizer.Normalize(api.DecodeSearchResponse(raw), keyword, limit)
	s.searchCache.Set(cacheKey, results)
	return results, nil
}

// HomeFeed 获取指定分类的首页卡片
func (s *MovieService) HomeFeed(ctx context.Context, category string, limit int) ([]model.Card, error) {
	if limit <= 0 {
		limit = HomeFeedLimit
	}

	raw, err := s.client.GetJSON(ctx, "/home", map[string]string{
		"category": category,
		"limit":    strconv.Itoa(limit),
	})
	if err != nil {
		return nil, err
	}

	var cards []model.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("unexpected home feed payload: %w", err)
	}
	return cards, nil
}

// Detail 获取电影详情
func (s *MovieService) Detail(ctx context.Context, tmdbID int) (*model.MovieDetail, error) {
	raw, err := s.client.GetJSON(ctx, fmt.Sprintf("/movie/id/%d", tmdbID), nil)
	if err != nil {
		return nil, err
	}

	var detail model.MovieDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, fmt.Errorf("unexpected movie detail payload: %w", err)
	}
	return &detail, nil
}

// RecommendationSource 推荐数据的来源层级
type RecommendationSource int

const (
	// RecommendNone 两级推荐都没有拿到可用数据
	RecommendNone RecommendationSource = iota
	// RecommendBundle 标题检索的 TF-IDF + 同类型组合包
	RecommendBundle
	// RecommendGenre 纯类型回退
	RecommendGenre
)

// Recommendations 详情页的推荐区数据
type Recommendations struct {
	Source RecommendationSource
	TFIDF  []model.Card // 基于剧情主题的相似推荐
	Genre  []model.Card // 同类型推荐
}

// FromBundle 数据来自标题检索的组合包
func (r Recommendations) FromBundle() bool { return r.Source == RecommendBundle }

// FromGenre 数据来自类型回退
func (r Recommendations) FromGenre() bool { return r.Source == RecommendGenre }

// Recommend 按固定顺序尝试推荐：标题组合包 → 类型回退 → 无。
// 各级严格串行，前一级拿到可用数据后不再尝试下一级；
// 失败只记日志，绝不让详情页因为推荐挂掉。
func (s *MovieService) Recommend(ctx context.Context, tmdbID int, title string) Recommendations {
	title = strings.TrimSpace(title)

	// 第一级：按标题检索的推荐组合包
	if title != "" {
		raw, err := s.client.GetJSON(ctx, "/movie/search", map[string]string{
			"query":       title,
			"tfidf_top_n": strconv.Itoa(tfidfTopN),
			"genre_limit": strconv.Itoa(bundleGenreLimit),
		})
		if err != nil {
			log.Printf("[MovieService] 推荐组合包获取失败 (tmdb_id=%d): %v", tmdbID, err)
		} else {
			var bundle model.RecommendationBundle
			if err := json.Unmarshal(raw, &bundle); err != nil {
				log.Printf("[MovieService] 推荐组合包解析失败 (tmdb_id=%d): %v", tmdbID, err)
			} else if len(bundle.TFIDF) > 0 || len(bundle.Genre) > 0 {
				return Recommendations{
					Source: RecommendBundle,
					TFIDF:  TFIDFToCards(bundle.TFIDF),
					Genre:  bundle.Genre,
				}
			}
		}
	}

	// 第二级：纯类型推荐
	raw, err := s.client.GetJSON(ctx, "/recommend/genre", map[string]string{
		"tmdb_id": strconv.Itoa(tmdbID),
		"limit":   strconv.Itoa(genreOnlyLimit),
	})
	if err != nil {
		log.Printf("[MovieService] 类型推荐获取失败 (tmdb_id=%d): %v", tmdbID, err)
		return Recommendations{Source: RecommendNone}
	}

	var cards []model.Card
	if err := json.Unmarshal(raw, &cards); err != nil || len(cards) == 0 {
		return Recommendations{Source: RecommendNone}
	}
	return Recommendations{Source: RecommendGenre, Genre: cards}
}
