package utils

import "time"

// ReportCooldown is the fixed wait between two report submissions from the
// same client.
const ReportCooldown = 3 * time.Minute

// CooldownRemaining returns how much longer a client that last submitted at
// lastReport has to wait, floored at zero.
func CooldownRemaining(lastReport, now time.Time) time.Duration {
	remaining := ReportCooldown - now.Sub(lastReport)
	if remaining < 0 {
		return 0
	}
	return remaining
}
