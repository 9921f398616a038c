package logging

import (
	"os"
)

// DebugEnabled returns true if debug mode is enabled via TM_DEBUG environment variable
func DebugEnabled() bool {
	switch os.Getenv("TM_DEBUG") {
	case "", "0", "false":
		return false
	}
	return true
}
