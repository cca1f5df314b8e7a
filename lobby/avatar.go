package lobby

import "net/url"

const avatarBase = "https://avatars.dicebear.com/api/adventurer-neutral/"

// AvatarURL derives a participant's avatar image URL from their name. The
// name is path-escaped so that spaces and slashes produce a valid URL.
func AvatarURL(name string) string {
	return avatarBase + url.PathEscape(name) + ".svg"
}
