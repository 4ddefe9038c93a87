package analytics

import (
	"fmt"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
)

// KeyTakeouts 按固定顺序生成叙述句：
//  1. 监测总量  2. 客户提及与声量份额  3. 主导媒体  4. 峰值月份
//  5. 情感  6. 首要主题  7. 最活跃记者  8. 领先竞品
//
// 缺少数据时对应位置输出替代句，顺序保持不变。
func KeyTakeouts(r *Result, clientName string, window model.DateWindow) []string {
	period := window.Label()
	out := make([]string, 0, 8)

	out = append(out, fmt.Sprintf("A total of %d stories were monitored between %s.", r.TotalStories, period))

	share := 0.0
	for _, v := range r.Visibility {
		if v.IsClient {
			share = v.Percentage
			break
		}
	}
	out = append(out, fmt.Sprintf("%s was mentioned in %d stories, a %.1f%% share of voice among industry peers.",
		clientName, r.ClientMentions, share))

	if lead, ok := leadingMedium(r.Distribution); ok {
		out = append(out, fmt.Sprintf("%s was the leading medium, carrying %.1f%% of all coverage.", lead.Medium.Label(), lead.Percentage))
	} else {
		out = append(out, "No coverage was recorded in any medium during this period.")
	}

	if peak, ok := peakMonth(r.Trend); ok {
		out = append(out, fmt.Sprintf("Coverage peaked in %s with %d stories.", peak.Month, peak.Total))
	} else {
		out = append(out, "Coverage volume stayed flat with no stories recorded in any month.")
	}

	if r.Sentiment.Scored > 0 {
		out = append(out, fmt.Sprintf("%.1f%% of scored coverage was positive, %.1f%% neutral and %.1f%% negative.",
			r.Sentiment.PositivePct, r.Sentiment.NeutralPct, r.Sentiment.NegativePct))
	} else {
		out = append(out, "No coverage in this period carried a sentiment score.")
	}

	if len(r.Themes) > 0 {
		out = append(out, fmt.Sprintf("The most prominent theme was %q, appearing in %d stories.", r.Themes[0].Keyword, r.Themes[0].Count))
	} else {
		out = append(out, "No recurring themes were identified in story keywords.")
	}

	if len(r.Journalists) > 0 {
		j := r.Journalists[0]
		out = append(out, fmt.Sprintf("%s (%s) was the most active journalist covering %s with %d stories.", j.Name, j.Outlet, clientName, j.Articles))
	} else {
		out = append(out, fmt.Sprintf("No bylined journalist coverage of %s was recorded.", clientName))
	}

	if len(r.Competitors) > 0 && r.Competitors[0].Mentions > 0 {
		c := r.Competitors[0]
		out = append(out, fmt.Sprintf("%s led competitor coverage with %d mentions (%.1f%% of competitor mentions).", c.Name, c.Mentions, c.Percentage))
	} else {
		out = append(out, "No competitor coverage was recorded in this period.")
	}
	return out
}

func leadingMedium(shares []MediumShare) (MediumShare, bool) {
	var best MediumShare
	found := false
	for _, s := range shares {
		if s.Count > best.Count {
			best, found = s, true
		}
	}
	return best, found
}

func peakMonth(trend []MonthBucket) (MonthBucket, bool) {
	var best MonthBucket
	found := false
	for _, b := range trend {
		if b.Total > best.Total {
			best, found = b, true
		}
	}
	return best, found
}
