package models

type IEventPublisher interface {
	Publish(topic EventName, event interface{})
}
