package models

// SessionState is a point-in-time copy of the broker session.
type SessionState struct {
	ActiveBroker      *BrokerName     `json:"activeBroker"`
	ActiveAccount     *BrokerAccount  `json:"activeAccount"`
	ConnectedAccounts []BrokerAccount `json:"connectedAccounts"`
	IsLoading         bool            `json:"isLoading"`
	IsSyncing         bool            `json:"isSyncing"`
}

func (s *SessionState) IsActive(key AccountKey) bool {
	if s.ActiveAccount == nil {
		return false
	}

	return s.ActiveAccount.Key() == key
}
