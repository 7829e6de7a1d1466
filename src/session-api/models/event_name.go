package models

type EventName string

const (
	BrokerSwitchedEventName  EventName = "broker:switched"
	BrokerRefreshedEventName EventName = "broker:refreshed"
	NotificationEventName    EventName = "notification"
)
