// Package userscript renders stored scripts as installable userscript files.
package userscript

import (
	"fmt"
	"strings"

	"github.com/veyrascripts/gallery/internal/models"
)

const (
	namespace = "http://tampermonkey.net/"
	iconURL   = "https://demonicscans.org/favicon.ico"
)

// Render prefixes the script code with a generated metadata header. The
// update and download URLs point back at publicBaseURL.
func Render(script *models.Script, publicBaseURL string) string {
	var b strings.Builder

	scriptURL := URL(publicBaseURL, script.ID)

	b.WriteString("// ==UserScript==\n")
	line(&b, "name", script.Name)
	line(&b, "namespace", namespace)
	line(&b, "version", script.Version)
	line(&b, "description", script.Description)
	line(&b, "author", script.Author)
	line(&b, "match", script.Match)
	if len(script.Grant) == 0 {
		line(&b, "grant", "none")
	}
	for _, grant := range script.Grant {
		line(&b, "grant", grant)
	}
	line(&b, "icon", iconURL)
	line(&b, "updateURL", scriptURL)
	line(&b, "downloadURL", scriptURL)
	b.WriteString("// ==/UserScript==\n\n")
	b.WriteString(script.Code)

	return b.String()
}

// URL is the public address the rendered file is served from.
func URL(publicBaseURL string, id string) string {
	return strings.TrimRight(publicBaseURL, "/") + "/api/scripts/" + id
}

func Filename(id string) string {
	return id + ".user.js"
}

func line(b *strings.Builder, key string, value string) {
	fmt.Fprintf(b, "// @%-12s %s\n", key, value)
}
