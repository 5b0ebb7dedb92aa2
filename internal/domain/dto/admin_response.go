package dto

// MaterializeResponse reports a manual materialization run.
type MaterializeResponse struct {
	Date                  string `json:"date" example:"2024-01-02"`
	FactsRead             int    `json:"facts_read" example:"2100"`
	CompanyMetricsWritten int    `json:"company_metrics_written" example:"1850"`
	CompanyMetricsSkipped int    `json:"company_metrics_skipped" example:"0"`
	OverviewWritten       bool   `json:"overview_written" example:"true"`
	DurationMillis        int64  `json:"duration_ms" example:"412"`
}

// StatusResponse is the body of the liveness and readiness probes.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}
