package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"motoride/config"
	"motoride/pkg/logger"
	"motoride/service"

	tele "gopkg.in/telebot.v3"
)

// UserSession holds one chat's conversation state. Telebot dispatches
// every update on its own goroutine, so the fields are guarded by mu.
type UserSession struct {
	mu        sync.Mutex
	AccountID int64
	State     string
	Reg       *service.RegistrationController
}

type Bot struct {
	Bot      *tele.Bot
	Log      logger.ILogger
	Cfg      *config.Config
	Svc      service.IServiceManager
	mu       sync.RWMutex
	Sessions map[int64]*UserSession
}

// session looks up the sender's session under the map lock.
func (b *Bot) session(id int64) (*UserSession, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	session, ok := b.Sessions[id]
	return session, ok
}

// resetSession replaces the sender's session with a fresh idle one.
func (b *Bot) resetSession(id int64) *UserSession {
	b.mu.Lock()
	defer b.mu.Unlock()
	session := &UserSession{State: StateIdle}
	b.Sessions[id] = session
	return session
}

const (
	StateIdle = "idle"

	StateRegFirstName       = "reg_first_name"
	StateRegLastName        = "reg_last_name"
	StateRegEmail           = "reg_email"
	StateRegBirthdate       = "reg_birthdate"
	StateRegPhone           = "reg_phone"
	StateRegMotoModel       = "reg_moto_model"
	StateRegMotoRegNo       = "reg_moto_reg_no"
	StateRegPassword        = "reg_password"
	StateRegConfirmPassword = "reg_confirm_password"

	StateLoginEmail = "login_email"
)

var messages = map[string]string{
	"welcome":         "👋 Welcome to MotoRide!",
	"menu":            "🏍 Main menu:",
	"btn_register":    "📝 Register as a driver",
	"btn_login":       "🔑 Log in",
	"btn_bookings":    "📋 My bookings",
	"reg_first_name":  "📝 Enter your first name:",
	"reg_last_name":   "📝 Enter your last name:",
	"reg_email":       "📧 Enter your email address:",
	"reg_birthdate":   "🎂 Enter your birthdate (YYYY-MM-DD):",
	"reg_bad_date":    "❌ That doesn't look like a date. Use the format YYYY-MM-DD, for example 2000-06-15:",
	"reg_phone":       "📱 Enter your phone number (09xxxxxxxxx):",
	"reg_moto_model":  "🏍 Enter your motorcycle model:",
	"reg_moto_reg_no": "🔢 Enter your motorcycle registration number:",
	"reg_password":    "🔒 Choose a password:",
	"reg_confirm":     "🔒 Confirm your password:",
	"reg_summary":     "📋 Please review your application:\n\n👤 %s %s\n📧 %s\n🎂 %s\n📱 %s\n🏍 %s (%s)\n\nSubmit?",
	"reg_cancelled":   "❌ Registration cancelled.",
	"login_email":     "🔑 Enter the email address of your account:",
	"login_not_found": "❌ No account found for that email. Register first?",
	"login_ok":        "✅ Logged in. You can now view your bookings.",
	"login_failed":    "❌ Could not look up your account. Please try again later.",
	"bookings_failed": "❌ Could not load your bookings. Please try again later.",
	"bookings_login":  "🔑 Please log in first to see your bookings.",
	"session_expired": "Session expired. Send /start to begin again.",
}

func New(cfg *config.Config, svc service.IServiceManager, log logger.ILogger) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}
	bot := &Bot{
		Bot:      b,
		Log:      log,
		Cfg:      cfg,
		Svc:      svc,
		Sessions: make(map[int64]*UserSession),
	}
	bot.registerHandlers()
	return bot, nil
}

func (b *Bot) Start() {
	b.Log.Info("🤖 MotoRide bot started")
	b.Bot.Start()
}

func (b *Bot) registerHandlers() {
	b.Bot.Handle("/start", b.handleStart)
	b.Bot.Handle(messages["btn_register"], b.handleRegisterStart)
	b.Bot.Handle(messages["btn_login"], b.handleLoginStart)
	b.Bot.Handle(messages["btn_bookings"], b.handleMyBookings)
	b.Bot.Handle(tele.OnCallback, b.handleCallback)
	b.Bot.Handle(tele.OnText, b.handleText)
}

func (b *Bot) handleStart(c tele.Context) error {
	b.resetSession(c.Sender().ID)
	c.Send(messages["welcome"])
	return b.showMenu(c)
}

func (b *Bot) showMenu(c tele.Context) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(messages["btn_register"])),
		menu.Row(menu.Text(messages["btn_login"]), menu.Text(messages["btn_bookings"])),
	)
	return c.Send(messages["menu"], menu)
}

func (b *Bot) handleLoginStart(c tele.Context) error {
	session, ok := b.session(c.Sender().ID)
	if !ok {
		return c.Send(messages["session_expired"])
	}
	session.mu.Lock()
	session.State = StateLoginEmail
	session.mu.Unlock()
	return c.Send(messages["login_email"], tele.RemoveKeyboard)
}

// handleLoginEmail runs with session.mu held by handleText.
func (b *Bot) handleLoginEmail(c tele.Context, session *UserSession) error {
	account, err := b.Svc.Account().GetByEmail(context.Background(), c.Text())
	if err != nil {
		b.Log.Error("failed to look up account", logger.Error(err))
		return c.Send(messages["login_failed"])
	}
	if account == nil {
		return c.Send(messages["login_not_found"])
	}
	session.AccountID = account.ID
	session.State = StateIdle
	c.Send(messages["login_ok"])
	return b.showMenu(c)
}

func (b *Bot) handleText(c tele.Context) error {
	session, ok := b.session(c.Sender().ID)
	if !ok {
		return nil
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	switch session.State {
	case StateIdle:
		return nil
	case StateLoginEmail:
		return b.handleLoginEmail(c, session)
	}
	return b.handleRegistrationText(c, session)
}

func (b *Bot) handleCallback(c tele.Context) error {
	session, ok := b.session(c.Sender().ID)
	if !ok {
		return c.Send(messages["session_expired"])
	}

	switch c.Callback().Data {
	case "reg_submit":
		return b.handleRegistrationSubmit(c, session)
	case "reg_cancel":
		session.mu.Lock()
		session.State = StateIdle
		session.Reg = nil
		session.mu.Unlock()
		c.Send(messages["reg_cancelled"])
		return b.showMenu(c)
	}
	return nil
}

// chatNotifier delivers controller notifications to the applicant's chat.
type chatNotifier struct {
	bot  *tele.Bot
	chat *tele.Chat
}

func (n chatNotifier) Notify(level service.NotifyLevel, message string) {
	icon := "❌"
	if level == service.NotifySuccess {
		icon = "✅"
	}
	n.bot.Send(n.chat, fmt.Sprintf("%s %s", icon, message))
}

// chatNavigator maps screen transitions onto bot conversations. The only
// transition the registration flow requests is to the login screen.
type chatNavigator struct {
	b      *Bot
	chat   *tele.Chat
	sender int64
}

func (n chatNavigator) Navigate(screen string) {
	if screen != service.ScreenLogin {
		return
	}
	if session, ok := n.b.session(n.sender); ok {
		session.mu.Lock()
		session.State = StateLoginEmail
		session.Reg = nil
		session.mu.Unlock()
	}
	n.b.Bot.Send(n.chat, messages["login_email"])
}
