package rabbitmq

// ExchangeName — обменник конвейера напоминаний об оплате.
const ExchangeName = "reminders"

// RoutingKeyUnpaid — ключ маршрутизации напоминаний о неоплаченных занятиях.
const RoutingKeyUnpaid = "unpaid"

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetReminderQueues возвращает очереди конвейера напоминаний.
func GetReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "reminder.unpaid", RoutingKey: RoutingKeyUnpaid},
	}
}
