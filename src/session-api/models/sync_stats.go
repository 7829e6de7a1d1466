package models

type SyncStatsSummary struct {
	Count    int     `json:"count"`
	MeanMs   float64 `json:"mean_ms"`
	MedianMs float64 `json:"median_ms"`
	P95Ms    float64 `json:"p95_ms"`
	MaxMs    float64 `json:"max_ms"`
}

type SessionStatus struct {
	IsLoading     bool             `json:"isLoading"`
	IsSyncing     bool             `json:"isSyncing"`
	ActiveAccount *AccountKey      `json:"activeAccount"`
	Accounts      int              `json:"accounts"`
	SwitchStats   SyncStatsSummary `json:"switch_stats"`
	RefreshStats  SyncStatsSummary `json:"refresh_stats"`
}
