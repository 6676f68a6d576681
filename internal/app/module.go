package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/otpgate/internal/identity"
	"github.com/shandysiswandi/otpgate/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		if err := identity.New(identity.Dependency{
			DBConn:     a.dbConn,
			Store:      a.store,
			Router:     a.router,
			Messaging:  a.messaging,
			Mail:       a.mail,
			Renderer:   a.mailRenderer,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
			Bcrypt:     a.bcrypt,
			AccessJWT:  a.accessJWT,
			RefreshJWT: a.refreshJWT,
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Mail:       a.mail,
			Renderer:   a.mailRenderer,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
