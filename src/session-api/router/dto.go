package router

import "github.com/jiaming2012/broker-session/src/session-api/models"

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func NewErrorResponse(errType string, message string) *errorResponse {
	return &errorResponse{
		Type: errType,
		Msg:  message,
	}
}

type AddBrokerAccountRequest struct {
	Broker      models.BrokerName `json:"broker"`
	AccountID   string            `json:"accountId"`
	AccountName string            `json:"accountName"`
	Connected   *bool             `json:"connected"`
}

func (r *AddBrokerAccountRequest) ToBrokerAccount() models.BrokerAccount {
	connected := true
	if r.Connected != nil {
		connected = *r.Connected
	}

	return models.NewBrokerAccount(r.Broker, r.AccountID, r.AccountName, connected)
}

type SwitchBrokerRequest struct {
	Broker    models.BrokerName `schema:"broker,required"`
	AccountID string            `schema:"accountId"`
}

type RemoveBrokerAccountResponse struct {
	Removed models.AccountKey `json:"removed"`
}
