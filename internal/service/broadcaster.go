package service

// Broadcaster pushes table updates to connected clients (avoids import cycle)
type Broadcaster interface {
	BroadcastToTable(tableCode string, msgType string, payload interface{})
	DisconnectTable(tableCode string)
}
