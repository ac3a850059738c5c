package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_record_refreshes_total",
		Help: "Total number of record refreshes applied to the store, per domain.",
	},
		[]string{"domain"},
	)

	PollTicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_poll_ticks_total",
		Help: "Total number of polling scheduler ticks fired.",
	})

	PollFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_poll_failures_total",
		Help: "Total number of polling refreshes that failed.",
	})

	BulkActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_bulk_actions_total",
		Help: "Total number of bulk actions dispatched, per action.",
	},
		[]string{"action"},
	)

	BulkItemFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_bulk_item_failures_total",
		Help: "Total number of individual records that failed within bulk actions.",
	})

	StepUpAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_stepup_attempts_total",
		Help: "Total number of step-up verification attempts, per outcome.",
	},
		[]string{"outcome"},
	)

	FieldRevealsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_field_reveals_total",
		Help: "Total number of protected fields toggled visible.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)
)
