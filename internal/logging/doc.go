// Package logging builds the structured zap logger used across realmboard.
//
// The dashboard owns the terminal, so log output always goes to the file
// named in the [log] section of the config. Level "debug" selects zap's
// development config; any other level uses the production config at that
// level. Format "console" switches to the plain console encoder, anything
// else writes JSON lines.
//
//	log, err := logging.New(cfg.Log)
//	if err != nil {
//		return err
//	}
//	defer log.Sync()
//	log.Info("realmboard started", zap.String("api", cfg.APIURL))
package logging
