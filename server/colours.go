package server

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jrsteele09/go-league-admin/transport"
)

var (
	methodStyles = map[string]lipgloss.Style{
		http.MethodGet:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		http.MethodPost:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		http.MethodPut:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		http.MethodPatch:  lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		http.MethodDelete: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
	otherMethodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusOKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	statusClientStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	statusCSRFStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	statusServerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// colouredMethod renders an HTTP verb for the DEV console log. Colours drop out when stderr is not a terminal.
func colouredMethod(method string) string {
	style, ok := methodStyles[method]
	if !ok {
		style = otherMethodStyle
	}
	return style.Render(method)
}

// colouredStatus highlights 419 on its own so stale-token recoveries stand out in the request log.
func colouredStatus(status int) string {
	text := strconv.Itoa(status)
	switch {
	case status == transport.StatusCSRFMismatch:
		return statusCSRFStyle.Render(text)
	case status >= 500:
		return statusServerStyle.Render(text)
	case status >= 400:
		return statusClientStyle.Render(text)
	default:
		return statusOKStyle.Render(text)
	}
}
