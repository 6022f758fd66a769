package event

import "github.com/wagoodman/go-partybus"

const (
	SyncStarted     partybus.EventType = "mvh-sync-started"
	AppSyncFinished partybus.EventType = "mvh-sync-app-finished"
	SyncFinished    partybus.EventType = "mvh-sync-finished"
)
