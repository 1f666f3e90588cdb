// Package engagement summarizes video performance for a fetched batch:
// aggregate view/like/comment totals, the like-per-view engagement rate and
// the top videos by views.
package engagement

import (
	"sort"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
)

const topVideosLimit = 10

// VideoSummary is the batch-level video engagement block.
// EngagementRate is total likes per total views as a percentage, 0 when no
// views were counted.
type VideoSummary struct {
	VideoCount     int            `json:"video_count"`
	TotalViews     int            `json:"total_views"`
	TotalLikes     int            `json:"total_likes"`
	TotalComments  int            `json:"total_comments"`
	EngagementRate float64        `json:"engagement_rate"`
	TopVideos      []domain.Video `json:"top_videos"`
}

// Summarize computes the engagement block for one batch of videos. The
// input slice is not modified.
func Summarize(videos []domain.Video) VideoSummary {
	summary := VideoSummary{
		VideoCount: len(videos),
		TopVideos:  make([]domain.Video, 0, min(len(videos), topVideosLimit)),
	}

	for _, v := range videos {
		summary.TotalViews += v.ViewCount
		summary.TotalLikes += v.LikeCount
		summary.TotalComments += v.CommentCount
	}

	if summary.TotalViews > 0 {
		summary.EngagementRate = float64(summary.TotalLikes) / float64(summary.TotalViews) * 100
	}

	ranked := make([]domain.Video, len(videos))
	copy(ranked, videos)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ViewCount != ranked[j].ViewCount {
			return ranked[i].ViewCount > ranked[j].ViewCount
		}

		return ranked[i].VideoID < ranked[j].VideoID
	})

	if len(ranked) > topVideosLimit {
		ranked = ranked[:topVideosLimit]
	}

	summary.TopVideos = append(summary.TopVideos, ranked...)

	return summary
}
