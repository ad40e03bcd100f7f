package configure

import (
	"github.com/sirupsen/logrus"
)

func initLogging(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		logrus.WithError(err).Error("invalid log level")
	}

	logrus.SetLevel(lvl)
}
