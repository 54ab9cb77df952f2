// Package bot wires the travel questionnaire onto the reusable Telegram core:
// the per-user form sessions, the admin review panel, and the persistence
// backends behind them.
package bot

import (
	"context"
	"sync"
	"time"

	coreconfig "github.com/ketravel/travelbot/core/config"
	coretelegram "github.com/ketravel/travelbot/core/telegram"
	"github.com/ketravel/travelbot/core/telegram/commands"
	"github.com/ketravel/travelbot/core/telegram/helpers"
	"github.com/ketravel/travelbot/core/telegram/middleware"
	"github.com/ketravel/travelbot/core/telegram/router"
	"github.com/ketravel/travelbot/internal/admin"
	"github.com/ketravel/travelbot/internal/form"
	"github.com/ketravel/travelbot/internal/locales"
	"github.com/ketravel/travelbot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// panelRef locates an admin's live panel message for auto-refresh edits.
type panelRef struct {
	chatID    int64
	messageID int
}

// App is the travel bot application: questionnaire sessions, storage
// backends, and the admin panel tracker.
type App struct {
	cfg      *coreconfig.Config
	store    *form.Store
	backends storage.Backends
	tracker  *admin.Tracker

	mu     sync.Mutex
	panels map[int64]panelRef

	now func() time.Time
}

// New builds the application around the given configuration and backends.
func New(cfg *coreconfig.Config, backends storage.Backends) *App {
	return &App{
		cfg:      cfg,
		store:    form.NewStore(),
		backends: backends,
		tracker:  admin.NewTracker(admin.DefaultRefreshInterval),
		panels:   make(map[int64]panelRef),
		now:      time.Now,
	}
}

// CoreConfig implements cmd.ConfigCarrier.
func (a *App) CoreConfig() *coreconfig.Config { return a.cfg }

// InProgress reports whether the user has an active questionnaire session.
func (a *App) InProgress(userID int64) bool { return a.store.InProgress(userID) }

// TelegramRunOptions assembles routes, middlewares, and lifecycle hooks for
// the shared Telegram runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.cmdStart,
		Description: "Start the travel questionnaire",
	})
	reg.RegisterCommand("/language", commands.Command{
		Handler:     a.cmdLanguage,
		Description: "Change the interface language",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.cmdHelp,
		Description: "How the bot works",
	})
	reg.RegisterCommand("/support", commands.Command{
		Handler:     a.cmdSupport,
		Description: "Contact support",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     a.cmdAdminPanel,
		Description: "Open the review panel",
		AdminOnly:   true,
		Hidden:      true,
	})

	if err := reg.RegisterCallback(admin.CallbackRefresh, a.adminGuard(a.handleAdminRefresh)); err != nil {
		return coretelegram.RunOptions{}, err
	}
	if err := reg.RegisterCallbackPrefix(admin.CallbackDonePrefix, a.adminGuard(a.handleAdminDone)); err != nil {
		return coretelegram.RunOptions{}, err
	}
	if err := reg.RegisterCallbackPrefix(admin.CallbackViewPrefix, a.adminGuard(a.handleAdminView)); err != nil {
		return coretelegram.RunOptions{}, err
	}

	routes := router.MessageRoutes(a, reg, router.MessageOptions{
		Unknown: a.UnknownText(),
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{
		FSM:      a,
		NotFound: a.UnknownCallback(),
	}))
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminIDs:      a.cfg.Telegram.AdminIDs,
		OnAdminReject: a.adminReject,
	})...)

	middlewares := coretelegram.DefaultMiddlewares(a.cfg, nil)
	middlewares = append(middlewares, coretelegram.Middleware{
		Name: "sequential",
		Use:  middleware.Sequential(a.store),
	})

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: middlewares,
		Routes:      routes,
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.tracker.Close()
			return nil
		},
	}, nil
}

// userLang resolves the interface language for a user: the active session
// first, then the persisted preference, then the default.
func (a *App) userLang(ctx context.Context, userID int64) string {
	if sess, ok := a.store.Get(userID); ok && sess.Lang != "" {
		return sess.Lang
	}
	if lang, ok, err := a.backends.Languages.Get(ctx, userID); err == nil && ok {
		return lang
	}
	return locales.Default
}

// adminReject answers a non-admin /admin attempt with an explicit denial.
func (a *App) adminReject(c tele.Context) error {
	lang := locales.Default
	if sender := c.Sender(); sender != nil {
		lang = a.userLang(helpers.BuildContext(c), sender.ID)
	}
	return c.Send(locales.Get(lang, "admin_denied"))
}

// adminGuard wraps admin panel callbacks: buttons outlive sessions and can be
// forwarded, so the allow-list is enforced per press.
func (a *App) adminGuard(h tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil || !a.cfg.IsAdmin(sender.ID) {
			return c.Respond(&tele.CallbackResponse{Text: "Not authorized", ShowAlert: true})
		}
		return h(c)
	}
}
