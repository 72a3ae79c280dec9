package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"
)

func configure() {
	var flagHost string
	var flagPort int
	var flagOpsPort int
	var flagRules string
	var flagDebug bool
	var flagTelemetry string

	flag.StringVar(&flagHost, "host", ListenHost, "Host interface to bind the listeners to")
	flag.IntVar(&flagPort, "port", ListenPort, "Port to bind the proxy listener to")
	flag.IntVar(&flagOpsPort, "ops-port", OpsListenPort, "Port to bind the ops listener to")
	flag.StringVar(&flagRules, "rules", RulesPath, "Path to a remap rules file")
	flag.BoolVar(&flagDebug, "debug", Debug, "Enable debug mode")
	flag.StringVar(&flagTelemetry, "telemetry", "", "Comma separated list of telemetry to enable: metrics, traces")
	flag.Parse()

	if isFlagPassed("debug") {
		Debug = flagDebug
	} else {
		Debug = isForgivingTrue(os.Getenv("REMAPD_DEBUG"))
	}
	if Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		slog.Info("Debug mode enabled!")
	}

	if isFlagPassed("host") {
		ListenHost = flagHost
	} else {
		ListenHost = GetEnvString("REMAPD_HOST", ListenHost)
	}
	if isFlagPassed("port") {
		ListenPort = flagPort
	} else {
		ListenPort = GetEnvInt("REMAPD_PORT", ListenPort)
	}
	if isFlagPassed("ops-port") {
		OpsListenPort = flagOpsPort
	} else {
		OpsListenPort = GetEnvInt("REMAPD_OPS_PORT", OpsListenPort)
	}

	if isFlagPassed("rules") {
		RulesPath = flagRules
	} else {
		RulesPath = GetEnvString("REMAPD_RULES_FILE", RulesPath)
	}

	var v string
	if isFlagPassed("telemetry") {
		v = flagTelemetry
	} else {
		v = os.Getenv("REMAPD_TELEMETRY")
	}
	if strings.Contains(v, "traces") || strings.Contains(v, "tracing") {
		UseTracing = true
		slog.Info("Tracing enabled.")
	}
	if strings.Contains(v, "metrics") {
		UseMetrics = true
		slog.Info("Metrics enabled.")
	}
}

func isForgivingTrue(v string) bool {
	v = strings.ToLower(v)
	return v == "true" || v == "yes" || v == "y" || v == "on"
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
