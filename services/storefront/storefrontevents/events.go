package storefrontevents

const (
	TopicName        = "storefront"
	toastEmittedName = TopicName + ".toast.emitted"
)

// ToastEmitted mirrors a notification shown to a storefront session.
type ToastEmitted struct {
	SessionUID  string
	Kind        string
	Title       string
	Description string
}

func (e ToastEmitted) GetEventTypeName() string {
	return toastEmittedName
}

func (e ToastEmitted) GetAggregateName() string {
	return e.SessionUID
}
