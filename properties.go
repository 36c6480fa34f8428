package scene

import (
	"os"
	"strconv"
	"sync/atomic"

	"github.com/grindlemire/go-scene/internal/debug"
)

// Environment variables read by LoadSystemProperties.
const (
	EnvLayoutDetect  = "SCENE_LAYOUT_DETECT"
	EnvDeveloperMode = "SCENE_DEVELOPER_MODE"
	EnvDebugBoundary = "SCENE_DEBUG_BOUNDARY"
)

// SystemProperties are process-wide diagnostic switches.
type SystemProperties struct {
	// DebugLogPath is the file the debug logger writes to. Empty disables it.
	DebugLogPath string
	// LayoutDetect turns layout invariant violations into panics.
	LayoutDetect bool
	// DeveloperMode enables extra diagnostics in logs.
	DeveloperMode bool
	// DebugBoundary logs every node that stops dirty propagation.
	DebugBoundary bool
}

var systemProperties atomic.Pointer[SystemProperties]

func init() {
	systemProperties.Store(&SystemProperties{})
}

// LoadSystemProperties reads the properties from the environment.
func LoadSystemProperties() SystemProperties {
	return SystemProperties{
		DebugLogPath:  os.Getenv(debug.EnvPath),
		LayoutDetect:  envBool(EnvLayoutDetect),
		DeveloperMode: envBool(EnvDeveloperMode),
		DebugBoundary: envBool(EnvDebugBoundary),
	}
}

// SetSystemProperties installs p and opens the debug log if p names one.
func SetSystemProperties(p SystemProperties) error {
	systemProperties.Store(&p)
	if p.DebugLogPath == "" {
		return nil
	}
	return debug.Init(p.DebugLogPath)
}

// CurrentSystemProperties returns the installed properties.
func CurrentSystemProperties() SystemProperties {
	return *systemProperties.Load()
}

func envBool(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
