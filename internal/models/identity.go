package models

import "fmt"

const placeholderAvatar = "https://via.placeholder.com/%d"

const (
	AvatarSizeCard   = 40
	AvatarSizeDetail = 80
)

// ENSIdentity is what the name service knows about an address. Empty fields are absent.
type ENSIdentity struct {
	DisplayName string `json:"displayName,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

const shortTailOffset = 38

// ShortAddress abbreviates an address to its first 6 characters, "..." and the
// tail from offset 38. A full 42-character 0x address therefore keeps its last
// 4 characters ("0x1234...5678"), and a 40-character one keeps its last 2.
// Anything shorter than 40 characters also keeps its last 2; 8 or fewer are
// returned unchanged.
func ShortAddress(address string) string {
	switch {
	case len(address) <= 8:
		return address
	case len(address) >= shortTailOffset+2:
		return address[:6] + "..." + address[shortTailOffset:]
	default:
		return address[:6] + "..." + address[len(address)-2:]
	}
}

func DisplayName(address string, identity *ENSIdentity) string {
	if identity != nil && identity.DisplayName != "" {
		return identity.DisplayName
	}
	return ShortAddress(address)
}

func AvatarURL(identity *ENSIdentity, size int) string {
	if identity != nil && identity.Avatar != "" {
		return identity.Avatar
	}
	return fmt.Sprintf(placeholderAvatar, size)
}
