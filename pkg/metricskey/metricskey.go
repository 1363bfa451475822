package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	// StatsUpstreamCallsSucceeded is base for counter metric for total succeeded upstream calls
	StatsUpstreamCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_scrapingbee_calls_succeeded",
		Help:         "stats_scrapingbee_calls_succeeded provides total succeeded ScrapingBee calls",
		RequiredTags: []string{"endpoint"},
	}

	StatsUpstreamCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_scrapingbee_calls_failed",
		Help:         "stats_scrapingbee_calls_failed provides total failed ScrapingBee calls",
		RequiredTags: []string{"endpoint"},
	}

	StatsUpstreamBytesReceived = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_scrapingbee_bytes_received",
		Help:         "stats_scrapingbee_bytes_received provides total bytes received from ScrapingBee",
		RequiredTags: []string{"endpoint"},
	}
)

// Perf
var (
	PerfUpstreamCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_scrapingbee_call",
		Help:         "perf_scrapingbee_call provides duration of a ScrapingBee call",
		RequiredTags: []string{"endpoint"},
	}
)

// Metrics returns slice of metrics from this repo
// keep sorted by name
var Metrics = []*metrics.Describe{
	&PerfUpstreamCall,
	&StatsUpstreamBytesReceived,
	&StatsUpstreamCallsFailed,
	&StatsUpstreamCallsSucceeded,
}
