package otel

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/okian/bikeshare/internal/ports"
)

func TestNew(t *testing.T) {
	Convey("Given a disabled configuration", t, func() {
		exp, err := New(context.Background(), Config{})

		Convey("Then a no-op exporter should be returned", func() {
			So(err, ShouldBeNil)
			_, ok := exp.(*NoOpExporter)
			So(ok, ShouldBeTrue)
			So(exp.ExportReport(context.Background(), &ports.ReportMetrics{}), ShouldBeNil)
			So(exp.Close(context.Background()), ShouldBeNil)
		})
	})

	Convey("Given an enabled configuration without endpoint", t, func() {
		_, err := NewExporter(context.Background(), Config{Enabled: true})

		Convey("Then ErrDisabled should be returned", func() {
			So(errors.Is(err, ErrDisabled), ShouldBeTrue)
		})
	})
}

func TestExportReport(t *testing.T) {
	Convey("Given an exporter on a manual reader", t, func() {
		ctx := context.Background()
		reader := sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		exp, err := newExporter(provider)
		So(err, ShouldBeNil)

		Convey("When exporting a report", func() {
			err := exp.ExportReport(ctx, &ports.ReportMetrics{
				City:         "chicago",
				Month:        "january",
				Day:          "all",
				RowsSelected: 6,
				Aggregations: map[string]time.Duration{"time": time.Millisecond, "users": 2 * time.Millisecond},
				Empty:        []string{"stations"},
			})
			So(err, ShouldBeNil)

			var rm metricdata.ResourceMetrics
			So(reader.Collect(ctx, &rm), ShouldBeNil)

			names := map[string]bool{}
			for _, sm := range rm.ScopeMetrics {
				for _, m := range sm.Metrics {
					names[m.Name] = true
				}
			}

			Convey("Then every instrument should have data", func() {
				So(names["bikeshare_reports_total"], ShouldBeTrue)
				So(names["bikeshare_report_rows"], ShouldBeTrue)
				So(names["bikeshare_aggregation_duration_seconds"], ShouldBeTrue)
				So(names["bikeshare_empty_aggregations_total"], ShouldBeTrue)
			})
		})

		Convey("When closing", func() {
			So(exp.Close(ctx), ShouldBeNil)
		})
	})
}
