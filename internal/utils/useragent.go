package utils

import (
	"strings"

	ua "github.com/mssola/user_agent"
)

// DeviceInfo holds parsed information from a User-Agent string
type DeviceInfo struct {
	DeviceType string `json:"device_type"` // mobile, tablet, desktop, bot
	OS         string `json:"os"`
	Browser    string `json:"browser"`
	BrowserVer string `json:"browser_ver,omitempty"`
}

var tabletIndicators = []string{"ipad", "tablet", "kindle", "playbook", "nexus 7", "nexus 9", "nexus 10", "sm-t"}

// ParseUserAgent extracts device information for the audit log
func ParseUserAgent(userAgent string) DeviceInfo {
	if userAgent == "" || userAgent == "Unknown" {
		return DeviceInfo{DeviceType: "unknown", OS: "Unknown", Browser: "Unknown"}
	}

	parser := ua.New(userAgent)
	name, version := parser.Browser()

	info := DeviceInfo{
		DeviceType: deviceType(parser),
		OS:         osName(parser),
		Browser:    name,
		BrowserVer: version,
	}
	if info.Browser == "" {
		info.Browser = "Unknown"
	}

	return info
}

// Map returns the info as audit log details
func (d DeviceInfo) Map() map[string]interface{} {
	m := map[string]interface{}{
		"device_type": d.DeviceType,
		"os":          d.OS,
		"browser":     d.Browser,
	}
	if d.BrowserVer != "" {
		m["browser_ver"] = d.BrowserVer
	}
	return m
}

func deviceType(parser *ua.UserAgent) string {
	switch {
	case parser.Bot():
		return "bot"
	case parser.Mobile():
		lower := strings.ToLower(parser.UA())
		for _, indicator := range tabletIndicators {
			if strings.Contains(lower, indicator) {
				return "tablet"
			}
		}
		return "mobile"
	default:
		return "desktop"
	}
}

func osName(parser *ua.UserAgent) string {
	info := parser.OSInfo()
	if info.Name == "" {
		return "Unknown"
	}
	if info.Version != "" {
		return info.Name + " " + info.Version
	}
	return info.Name
}
