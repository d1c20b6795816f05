package connector

// Status reports the lifecycle state of a configured service.
type Status string

const (
	// StatusNotConfigured means the name has no entry in the registry.
	StatusNotConfigured Status = "not_configured"

	// StatusStopped means the service is configured but has no live process.
	StatusStopped Status = "stopped"

	// StatusRunning means the service has a live, handshaken process.
	StatusRunning Status = "running"
)
