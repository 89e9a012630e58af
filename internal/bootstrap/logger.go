package bootstrap

import (
	"github.com/sirupsen/logrus"

	"github.com/sj9102001/workly/internal/config"
)

func BuildLogger(cfg config.Config) (*logrus.Logger, error) {
	return buildLogger(cfg)
}
