package analytics

import "github.com/iWorld-y/pr_presence/app/reporter/pkg/model"

// SentimentRollup 情感汇总。百分比只以已评分报道为分母。
type SentimentRollup struct {
	Positive    int     `json:"positive"`
	Neutral     int     `json:"neutral"`
	Negative    int     `json:"negative"`
	Scored      int     `json:"scored"`
	PositivePct float64 `json:"positivePct"`
	NeutralPct  float64 `json:"neutralPct"`
	NegativePct float64 `json:"negativePct"`
}

// Sentiment 汇总情感，未评分的报道不计入分母，也不当作中性
func Sentiment(stories []model.Story) SentimentRollup {
	var r SentimentRollup
	for _, st := range stories {
		if st.Sentiment == nil {
			continue
		}
		switch *st.Sentiment {
		case model.SentimentPositive:
			r.Positive++
		case model.SentimentNeutral:
			r.Neutral++
		case model.SentimentNegative:
			r.Negative++
		default:
			continue
		}
		r.Scored++
	}
	r.PositivePct = percent(r.Positive, r.Scored)
	r.NeutralPct = percent(r.Neutral, r.Scored)
	r.NegativePct = percent(r.Negative, r.Scored)
	return r
}
