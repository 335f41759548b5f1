package health

const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

// HealthResponse HTTP response model
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
