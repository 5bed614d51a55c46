// main.go

package main

import (
	"github.com/chiselops/puppet-bootstrap/cmd"
	"github.com/chiselops/puppet-bootstrap/pkg/logger"
	"github.com/chiselops/puppet-bootstrap/pkg/telemetry"
)

func main() {
	logger.InitializeWithFallback()
	if err := telemetry.Init("puppet-bootstrap"); err != nil {
		logger.L().Warn("Telemetry disabled: " + err.Error())
	}

	cmd.Execute()
}
