// ABOUTME: Prometheus text exposition of journal gauges at /metrics.
// ABOUTME: Families are built from the store on each scrape, no registry involved.
package api

import (
	"net/http"

	"github.com/harperreed/fitlog/internal/analyzer"
	"github.com/harperreed/fitlog/internal/models"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
)

const metricPrefix = "fitlog_"

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	opts, _ := h.current()
	records, err := h.repo.ListRecords(0)
	if err != nil {
		h.storeErr(w, err)
		return
	}

	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	w.Header().Set("Content-Type", string(format))
	w.WriteHeader(http.StatusOK)

	enc := expfmt.NewEncoder(w, format)
	for _, mf := range MetricFamilies(records, opts) {
		if err := enc.Encode(mf); err != nil {
			h.logger.Warn("encode metric family", zap.String("name", mf.GetName()), zap.Error(err))
			return
		}
	}
}

// MetricFamilies builds the gauges exported for a set of records.
func MetricFamilies(records []*models.DailyRecord, opts analyzer.Options) []*dto.MetricFamily {
	st := analyzer.ComputeStats(records)
	families := []*dto.MetricFamily{
		gauge("records_total", "Number of daily records in the journal.", float64(st.TotalRecords)),
		gauge("active_days_total", "Number of days with a logged sport.", float64(st.ActiveDays)),
		gauge("exercise_minutes_total", "Sum of exercise minutes across all records.", st.TotalMinutes),
		gauge("exercise_minutes_avg", "Average exercise minutes per record.", st.AvgDuration),
		gauge("sleep_hours_avg", "Average sleep hours per record.", st.AvgSleep),
		gauge("sleep_quality_avg", "Average sleep quality per record.", st.AvgQuality),
	}

	if len(st.Sports) > 0 {
		mf := &dto.MetricFamily{
			Name: proto.String(metricPrefix + "sport_minutes_total"),
			Help: proto.String("Exercise minutes per sport."),
			Type: dto.MetricType_GAUGE.Enum(),
		}
		for _, sc := range st.Sports {
			mf.Metric = append(mf.Metric, &dto.Metric{
				Label: []*dto.LabelPair{{Name: proto.String("sport"), Value: proto.String(sc.Sport)}},
				Gauge: &dto.Gauge{Value: proto.Float64(sc.Minutes)},
			})
		}
		families = append(families, mf)
	}

	opts.Mode = analyzer.ModeComposite
	report := analyzer.New(opts).Analyze(records)
	if report.HasScores() && report.Composite != nil {
		families = append(families, gauge("health_score", "Composite health score over the analysis window.", report.Composite.Score))
	}
	return families
}

func gauge(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(metricPrefix + name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{
			{Gauge: &dto.Gauge{Value: proto.Float64(v)}},
		},
	}
}
