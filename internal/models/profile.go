package models

// Profile is the site owner's monolithic profile record, stored as a single
// scalar blob rather than through the record store.
type Profile struct {
	Name      string            `json:"name"`
	Headline  string            `json:"headline,omitempty"`
	Bio       string            `json:"bio,omitempty"`
	Location  string            `json:"location,omitempty"`
	Email     string            `json:"email,omitempty"`
	AvatarURL string            `json:"avatarUrl,omitempty"`
	Socials   map[string]string `json:"socials,omitempty"`
	UpdatedAt string            `json:"updatedAt"`
}
