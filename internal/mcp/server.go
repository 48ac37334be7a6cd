package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/chronos/internal/domain/activity"
	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/entry"
	"github.com/rpggio/chronos/internal/domain/schedule"
	"github.com/rpggio/chronos/internal/domain/timelog"
)

// CategoryService defines category operations needed by MCP.
type CategoryService interface {
	List(ctx context.Context) (category.Catalog, error)
}

// TimerService defines timer operations needed by MCP.
type TimerService interface {
	Start(ctx context.Context, categoryID string) (*timelog.TimeLog, error)
	Stop(ctx context.Context) (*timelog.TimeLog, error)
	QuickLog(ctx context.Context, categoryID string, minutes int) (*timelog.TimeLog, error)
	Active() (*timelog.TimeLog, bool)
}

// LogStore is the read side of the time log store.
type LogStore interface {
	List() []timelog.TimeLog
	Get(id string) (timelog.TimeLog, error)
}

// EntryService defines edit-form operations needed by MCP.
type EntryService interface {
	Save(ctx context.Context, form entry.Form) (*timelog.TimeLog, bool, error)
	Delete(ctx context.Context, id string) error
}

// BoardService defines day-grid operations needed by MCP.
type BoardService interface {
	Open(date string) (schedule.Day, error)
	PrevDay() schedule.Day
	NextDay() schedule.Day
	View() schedule.View
	ClickEmpty(y float64, categoryID string) (timelog.TimeLog, bool)
	ClickBlock(id string) (timelog.TimeLog, bool, error)
	DragStart(id string, y float64) (timelog.TimeLog, error)
	DragMove(ctx context.Context, y float64) (*timelog.TimeLog, error)
	DragEnd() error
	State() schedule.State
}

// ReportService defines report operations needed by MCP.
type ReportService interface {
	Generate(ctx context.Context, logs []timelog.TimeLog, catalog category.Catalog) string
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Categories CategoryService
	Timer      TimerService
	Logs       LogStore
	Entries    EntryService
	Board      BoardService
	Reports    ReportService
	Activity   ActivityService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Location      *time.Location
	Resolver      KeyResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "chronos",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Later middleware wraps earlier middleware, so auth runs before traffic
	// logging and the logged caller is known. Stdio never authenticates.
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(noAuthMiddleware(localCaller))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}

	registerTools(server, NewHandler(cfg.Services, cfg.Location, cfg.Logger))

	return server
}
