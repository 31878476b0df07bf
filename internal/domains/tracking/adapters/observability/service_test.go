package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Apurer/pan-logistics-api/internal/domains/tracking/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/tracking/ports"
)

type stubService struct {
	view *domain.View
	err  error
}

func (s stubService) Track(context.Context, string) (*domain.View, error) {
	return s.view, s.err
}

func (s stubService) Validate(context.Context, string) (domain.Validation, error) {
	return domain.Validation{Valid: true}, s.err
}

func TestTrack_RecordsLookupOutcome(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("test")
	ctx := context.Background()

	found := New(stubService{view: &domain.View{TrackingNumber: "PAN-A-B"}}, WithMeter(meter))
	_, err := found.Track(ctx, "PAN-A-B")
	require.NoError(t, err)

	missing := New(stubService{err: ports.ErrShipmentNotFound}, WithMeter(meter))
	_, err = missing.Track(ctx, "PAN-A-C")
	require.ErrorIs(t, err, ports.ErrShipmentNotFound)

	broken := New(stubService{err: errors.New("boom")}, WithMeter(meter))
	_, err = broken.Track(ctx, "PAN-A-D")
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 3)
}
