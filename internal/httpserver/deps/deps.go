package deps

import (
	"time"

	"github.com/casebandit/casebandit/internal/logger"
	"github.com/casebandit/casebandit/internal/notify"
	"github.com/casebandit/casebandit/internal/quicksave"
	"github.com/casebandit/casebandit/internal/shortcut"
	"github.com/casebandit/casebandit/internal/vault"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	AllowedHosts []string // Host headers allowed to access the server
	AllowedCIDRS []string // IPs allowed to access healthz/readyz endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)

	Store    *vault.Store     // persisted case collection + settings
	Feedback *notify.Feedback // badge/sound state machine
	Matcher  *shortcut.Matcher

	QuickSaveToken    string                 // shared sender token for /quicksave and /keypress
	QuickSaveTrigger  chan quicksave.Request // buffered, consumed by the orchestrator
	SeedReloadTrigger chan struct{}          // nil when seeding is disabled

	Backend        string // "badger" | "redis"
	CaptureEnabled bool   // true when a capture service endpoint is configured
}
