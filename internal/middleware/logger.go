package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
)

// LoggerConfig controls request logging behavior
type LoggerConfig struct {
	EnableColors bool
	SkipPaths    []string
}

func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		EnableColors: true,
		SkipPaths:    []string{"/health", "/metrics"},
	}
}

func Logger() gin.HandlerFunc {
	return LoggerWithConfig(DefaultLoggerConfig())
}

func LoggerWithConfig(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		for _, skipPath := range config.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		userID := c.GetString("userID")

		var statusColor, methodColor, resetColor string
		if config.EnableColors {
			statusColor = getStatusColor(status)
			methodColor = getMethodColor(c.Request.Method)
			resetColor = ColorReset
		}

		if userID != "" {
			log.Printf("%s%s%s %s %s%d%s %v user=%s",
				methodColor, c.Request.Method, resetColor,
				path,
				statusColor, status, resetColor,
				latency, userID)
		} else {
			log.Printf("%s%s%s %s %s%d%s %v",
				methodColor, c.Request.Method, resetColor,
				path,
				statusColor, status, resetColor,
				latency)
		}
	}
}

func getMethodColor(method string) string {
	switch method {
	case "GET":
		return ColorBlue
	case "POST":
		return ColorGreen
	case "PUT":
		return ColorYellow
	case "DELETE":
		return ColorRed
	default:
		return ColorCyan
	}
}

func getStatusColor(status int) string {
	switch {
	case status >= 500:
		return ColorRed
	case status >= 400:
		return ColorYellow
	default:
		return ColorGreen
	}
}
