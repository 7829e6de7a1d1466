package services

import "github.com/jiaming2012/broker-session/src/session-api/models"

type noopPublisher struct{}

func (noopPublisher) Publish(topic models.EventName, event interface{}) {}

type noopNotifier struct{}

func (noopNotifier) Notify(notification *models.Notification) {}
