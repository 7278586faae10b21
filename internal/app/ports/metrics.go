package ports

type ToolMetrics interface {
	RecordSuccess(tool string)
	RecordDenied(tool string)
	RecordFailure(tool string)
}
