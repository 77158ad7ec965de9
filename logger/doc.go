// Package logger provides structured logging on top of zerolog.
//
// Loggers are scoped by service and component and take their extra fields as
// plain maps:
//
//	log := logger.NewDefault("ledger").WithComponent("account")
//	log.Info("User registered", logger.Fields(logger.FieldUserID, u.ID))
//
// Credentials, session tokens and the signing secret must never be passed as
// fields.
package logger
