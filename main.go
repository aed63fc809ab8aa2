/*
main.go

Copyright © 2026 Code Monkey Cybersecurity
Contact: git@cybermonkey.net.au

This file is part of zscrub.

This software is dual-licensed under the Do No Harm License
and the GNU Affero General Public License v3 (AGPL-3.0-or-later).
You may use, modify, and distribute it under the terms of either license.
*/
package main

import (
	"github.com/CodeMonkeyCybersecurity/zscrub/cmd"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/config"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/telemetry"
	"go.uber.org/zap"
)

func main() {
	logger.InitializeWithFallback()
	config.Init(logger.L())
	if err := telemetry.Init("zscrub"); err != nil {
		logger.L().Warn("Telemetry disabled", zap.Error(err))
	}

	cmd.Execute()
}
