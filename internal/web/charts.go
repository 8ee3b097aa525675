package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// chartDefaultLimit keeps the bar chart readable
const chartDefaultLimit = 20

// handleChart renders an engagement bar chart (likes/reposts/replies per
// post) for a handle.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimSpace(r.URL.Query().Get("handle"))
	if handle == "" {
		http.Error(w, "missing handle parameter", http.StatusBadRequest)
		return
	}

	limit := parseIntOr(r.URL.Query().Get("limit"), chartDefaultLimit)
	if limit <= 0 || limit > chartDefaultLimit*2 {
		limit = chartDefaultLimit
	}

	result, err := s.buildUserReport(handle, limit)
	if err != nil {
		http.Error(w, "Error: "+err.Error(), http.StatusBadGateway)
		return
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Engagement for @%s", result.User.Handle),
			Subtitle: fmt.Sprintf("%d most recent posts", result.PostCount),
		}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	var labels []string
	var likes, reposts, replies []opts.BarData
	for i, post := range result.Posts {
		// Labels stay unique even when several posts share a time bucket
		label := fmt.Sprintf("#%d", i+1)
		if post.RelativeDate != "" {
			label = fmt.Sprintf("#%d (%s)", i+1, post.RelativeDate)
		}
		labels = append(labels, label)
		likes = append(likes, opts.BarData{Value: post.Likes})
		reposts = append(reposts, opts.BarData{Value: post.Reposts})
		replies = append(replies, opts.BarData{Value: post.Replies})
	}

	bar.SetXAxis(labels).
		AddSeries("Likes", likes).
		AddSeries("Reposts", reposts).
		AddSeries("Replies", replies)

	if err := bar.Render(w); err != nil {
		s.logger.WithError(err).Error("failed to render chart")
	}
}
