// Package observability implements operational metrics emission.
package observability

import (
	"context"
	"time"

	"wordaday-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// CloudWatchEmitter implements ports.MetricsEmitter on CloudWatch custom
// metrics. Emission is fire-and-forget: a metrics outage never fails the
// operation being measured.
type CloudWatchEmitter struct {
	client    *cloudwatch.Client
	namespace string
	logger    *zap.Logger
}

// NewCloudWatchEmitter creates a CloudWatch metrics emitter.
func NewCloudWatchEmitter(client *cloudwatch.Client, namespace string, logger *zap.Logger) ports.MetricsEmitter {
	return &CloudWatchEmitter{client: client, namespace: namespace, logger: logger}
}

// Count emits one counter data point.
func (e *CloudWatchEmitter) Count(ctx context.Context, name string, value float64, dimensions map[string]string) {
	dims := make([]types.Dimension, 0, len(dimensions))
	for k, v := range dimensions {
		dims = append(dims, types.Dimension{
			Name:  aws.String(k),
			Value: aws.String(v),
		})
	}

	_, err := e.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(e.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       types.StandardUnitCount,
				Timestamp:  aws.Time(time.Now().UTC()),
				Dimensions: dims,
			},
		},
	})
	if err != nil {
		e.logger.Warn("Failed to emit metric",
			zap.String("metric", name),
			zap.Error(err),
		)
	}
}

// NopEmitter discards metrics. Used when metrics are disabled and in tests.
type NopEmitter struct{}

// Count implements ports.MetricsEmitter.
func (NopEmitter) Count(context.Context, string, float64, map[string]string) {}
