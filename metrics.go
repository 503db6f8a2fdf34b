package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	identityCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "farmlink_client",
			Name:      "identity_cache_hits_total",
			Help:      "Name resolutions served from the local identity cache.",
		},
	)

	identityCacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "farmlink_client",
			Name:      "identity_cache_misses_total",
			Help:      "Name resolutions that needed a backend lookup.",
		},
	)

	identityLookupFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "farmlink_client",
			Name:      "identity_lookup_failures_total",
			Help:      "Backend lookups that failed and fell back to the raw id.",
		},
	)

	postRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "farmlink_client",
			Name:      "post_refresh_total",
			Help:      "Post store refreshes by outcome.",
		},
		[]string{"outcome"},
	)

	messagesSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "farmlink_client",
			Name:      "messages_sent_total",
			Help:      "Messages confirmed by a full round trip.",
		},
	)

	conversationsDedupedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "farmlink_client",
			Name:      "conversations_deduped_total",
			Help:      "Duplicate threads per counterparty collapsed by the index.",
		},
	)
)
