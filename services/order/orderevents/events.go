package orderevents

const (
	TopicName          = "order"
	orderSubmittedName = TopicName + ".submitted"
)

type OrderSubmitted struct {
	OrderUID     string
	SessionUID   string
	CustomerName string
	TotalItems   int
	Total        string
	Currency     string
	Channel      string
}

func (e OrderSubmitted) GetEventTypeName() string {
	return orderSubmittedName
}

func (e OrderSubmitted) GetAggregateName() string {
	return e.OrderUID
}
