package models

// VehicleInfo represents the identity and live flight state of the connected vehicle
type VehicleInfo struct {
	SystemID        uint8    `json:"systemId"`        // MAVLink system ID of the vehicle endpoint
	ComponentID     uint8    `json:"componentId"`     // MAVLink component ID of the vehicle endpoint
	AutopilotType   string   `json:"autopilotType"`   // e.g., "ArduPilot", "PX4"
	VehicleType     string   `json:"vehicleType"`     // e.g., "Quadcopter"
	FirmwareVersion string   `json:"firmwareVersion"` // Reported firmware version
	Capabilities    []string `json:"capabilities"`    // Capability tags (MISSION, PARAM, ...)
	Armed           bool     `json:"armed"`           // Whether the vehicle is currently armed
	FlightMode      string   `json:"flightMode"`      // Current flight mode name
}

// ConnectionStatus represents the state of the telemetry link
type ConnectionStatus struct {
	Connected        bool    `json:"connected"`
	ConnectionString *string `json:"connectionString,omitempty"` // Present only while connected
	LastHeartbeat    *int64  `json:"lastHeartbeat,omitempty"`    // ms since epoch; present only while connected
	MessagesReceived uint64  `json:"messagesReceived"`
	MessagesSent     uint64  `json:"messagesSent"`
	LinkQuality      float32 `json:"linkQuality"` // Normalized [0,1]
}

// NewConnectionStatus returns the initial disconnected status.
// ConnectionString and LastHeartbeat are nil iff Connected is false.
func NewConnectionStatus() ConnectionStatus {
	return ConnectionStatus{
		Connected:        false,
		ConnectionString: nil,
		LastHeartbeat:    nil,
		MessagesReceived: 0,
		MessagesSent:     0,
		LinkQuality:      0.0,
	}
}
