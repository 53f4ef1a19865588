package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/finlink/pkg/cryptox"
	"github.com/aussiebroadwan/finlink/pkg/jwtx"
)

// InitSessionSigner loads the session signing key from cfg.SessionKeyFile,
// or generates one when no file is configured. A generated key lives only as
// long as the process, so every restart signs everyone out.
func InitSessionSigner(cfg Config, logger *slog.Logger) (*jwtx.EdDSASigner, error) {
	var (
		pemKey []byte
		kid    = "session-ephemeral"
		err    error
	)

	if cfg.SessionKeyFile != "" {
		pemKey, err = os.ReadFile(cfg.SessionKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read session key: %w", err)
		}
		kid = "session-file"
		logger.Info("session key loaded", "path", cfg.SessionKeyFile)
	} else {
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, err
		}
		logger.Warn("no SESSION_KEY_FILE configured, generated an ephemeral session key")
	}

	return jwtx.NewSignerEdDSA(kid, pemKey)
}
