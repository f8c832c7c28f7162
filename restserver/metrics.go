// Copyright 2017-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/go-clams/restdata"
	"github.com/prometheus/client_golang/prometheus"
)

var requestCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "clams",
		Subsystem: "restserver",
		Name:      "requests_total",
		Help:      "Requests served, by HTTP method and status code",
	},
	[]string{
		"method",
		"status",
	},
)

var annotateDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "clams",
		Subsystem: "restserver",
		Name:      "annotate_duration_seconds",
		Help:      "Time spent in annotate, by outcome",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{
		"outcome",
	},
)

func init() {
	prometheus.MustRegister(requestCounter, annotateDuration)
}

// errorCode returns the short ErrorResponse code for err, used as a
// metric label.
func errorCode(err error) string {
	resp := restdata.ErrorResponse{}
	resp.FromError(err)
	return resp.Error
}
