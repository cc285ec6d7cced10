package ports

// BattleMetrics records arena KPIs for the ops endpoint.
type BattleMetrics interface {
	RecordBattleStarted()
	RecordWin()
	RecordLoss()
	RecordChainWrite(ok bool)
}
