// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "github.com/bureau-foundation/roomevents/lib/ref"

// TypingContent is the content of m.typing: the users currently typing
// in the room.
type TypingContent struct {
	UserIDs []ref.UserID `json:"user_ids"`
}

func (TypingContent) EventType() ref.EventType { return EventTypeTyping }

// Presence states.
const (
	PresenceOnline      = "online"
	PresenceOffline     = "offline"
	PresenceUnavailable = "unavailable"
)

// PresenceContent is the content of m.presence.
type PresenceContent struct {
	Presence        string `json:"presence"`
	LastActiveAgo   int64  `json:"last_active_ago,omitempty"`
	CurrentlyActive bool   `json:"currently_active,omitempty"`
	StatusMessage   string `json:"status_msg,omitempty"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	DisplayName     string `json:"displayname,omitempty"`
}

func (PresenceContent) EventType() ref.EventType { return EventTypePresence }
