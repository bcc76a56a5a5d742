package sqlstore

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// gormWriter routes gorm's statement log through zerolog. Outside verbose
// mode gorm only prints slow queries and errors, so those go out at warn
// level.
type gormWriter struct {
	log     zerolog.Logger
	verbose bool
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	if w.verbose {
		w.log.Debug().Str("component", "gorm").Msg(msg)
		return
	}
	w.log.Warn().Str("component", "gorm").Msg(msg)
}
