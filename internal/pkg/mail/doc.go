// Package mail sends email and renders the bodies from templates.
//
// Callers work with the Mail interface. SMTP delivers for real and Log only
// writes the message to the structured log, which is what local setups use.
package mail
