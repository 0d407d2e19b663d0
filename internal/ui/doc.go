// Package ui renders CLI output: lipgloss styles for headings and status lines and
// go-pretty tables for channel, playlist and video listings.
package ui
