package mypublisher

import (
	"github.com/MarcGrol/pharmacare/lib/myevents"
	"github.com/MarcGrol/pharmacare/lib/mytime"
	"github.com/MarcGrol/pharmacare/lib/myuuid"
)

type enveloper struct {
	nower  mytime.Nower
	uuider myuuid.UUIDer
}

func newEnveloper(nower mytime.Nower, uuider myuuid.UUIDer) enveloper {
	return enveloper{
		nower:  nower,
		uuider: uuider,
	}
}

// Toasts repeat with identical payloads, so every envelope gets its own uid.
func (e enveloper) do(topic string, event myevents.Event) (myevents.EventEnvelope, error) {
	return myevents.Wrap(e.uuider.Create(), e.nower.Now(), topic, event)
}
