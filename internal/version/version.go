package version

import (
	"runtime"
	"time"
)

// Set through -ldflags "-X github.com/yingnomad/remotelife/internal/version.Version=..."
var (
	Version   = "dev"                           // ex: v0.3.0
	Commit    = "none"                          // ex: 9f2c1ab
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-10-18T09:12:00Z
	GoVersion = runtime.Version()
)
