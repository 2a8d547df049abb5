package channels

import (
	"strings"
)

// Gallery carries invalidations for every listing page.
const Gallery = "gallery"

const attributeSeparator = "@"
const scriptTag = "script"

type ScriptChannel struct {
	ScriptID string
}

func AsScriptChannel(channel string) *ScriptChannel {
	channelAttributes := strings.SplitN(channel, attributeSeparator, 2)

	if len(channelAttributes) == 1 || channelAttributes[0] != scriptTag || channelAttributes[1] == "" {
		return nil
	}

	return &ScriptChannel{ScriptID: channelAttributes[1]}
}

// ForScript names the channel a script's detail page listens on.
func ForScript(id string) string {
	return scriptTag + attributeSeparator + id
}

func IsGallery(channel string) bool {
	return channel == Gallery
}

func IsValid(channel string) bool {
	return IsGallery(channel) || AsScriptChannel(channel) != nil
}
