package models

type INotifier interface {
	Notify(notification *Notification)
}
