package warmup

const (
	TopicName        = "warmup"
	warmupKickedName = TopicName + ".kicked"
)

type WarmupKicked struct {
	UID      string
	Products int
}

func (e WarmupKicked) GetEventTypeName() string {
	return warmupKickedName
}

func (e WarmupKicked) GetAggregateName() string {
	return e.UID
}
