package mvhsync

import (
	"github.com/wagoodman/go-partybus"

	"github.com/mvh/mvh-sync/internal/bus"
	"github.com/mvh/mvh-sync/internal/log"
	"github.com/mvh/mvh-sync/mvhsync/logger"
)

func SetLogger(logger logger.Logger) {
	log.Log = logger
}

func SetBus(b *partybus.Bus) {
	if b == nil {
		bus.SetPublisher(nil)
		return
	}
	bus.SetPublisher(b)
}
