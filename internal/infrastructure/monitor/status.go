package monitor

import "time"

type Status struct {
	Storage   bool      `json:"storage"`
	LastCheck time.Time `json:"last_check"`
}
