// Package mailtemplate embeds the mail bodies sent by the service.
package mailtemplate

import (
	"embed"
	"io/fs"
)

const (
	UserActivation      = "user-activation-mail"
	UserForgotPassword  = "user-forgotpassword-mail"
	UserWelcome         = "user-welcome-mail"
	UserPasswordChanged = "user-password-changed-mail"
)

//go:embed templates/*
var files embed.FS

// FS returns the templates rooted at the template directory.
func FS() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
