package utils

import (
	"time"

	"marketplace-listings/pkg/metrics"
)

func RecordMongoOperationDuration(operation, collection string, start time.Time) {
	duration := time.Since(start).Seconds()
	metrics.MongoOperationDuration.WithLabelValues(operation, collection).Observe(duration)
}

func RecordMongoError(operation, collection string) {
	metrics.MongoErrorsTotal.WithLabelValues(operation, collection).Inc()
}

// RecordNormalized counts a normalized batch and how many of its listings
// have no usable price.
func RecordNormalized(total, priceOnRequest int) {
	metrics.PropertiesNormalizedTotal.Add(float64(total))
	metrics.PriceOnRequestTotal.Add(float64(priceOnRequest))
}
