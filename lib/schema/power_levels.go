// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "github.com/bureau-foundation/roomevents/lib/ref"

// Power level defaults applied when the corresponding field is absent.
const (
	defaultEventsDefault = 0
	defaultStateDefault  = 50
	defaultModeration    = 50
)

// PowerLevelsContent is a typed representation of the m.room.power_levels
// state event content. It supports typed read-modify-write operations:
// decode it from an event with eventcontent.As, modify with SetUserLevel,
// SetEventLevel, or Grant, then build new content with
// eventcontent.FromStruct.
//
// Pointer-to-int fields distinguish "not set" (nil, omitted from JSON) from
// "explicitly set to 0" (pointer to 0). This preserves server defaults for
// fields the caller doesn't touch.
type PowerLevelsContent struct {
	Users         map[string]int `json:"users,omitempty"`
	UsersDefault  *int           `json:"users_default,omitempty"`
	Events        map[string]int `json:"events,omitempty"`
	EventsDefault *int           `json:"events_default,omitempty"`
	StateDefault  *int           `json:"state_default,omitempty"`
	Invite        *int           `json:"invite,omitempty"`
	Ban           *int           `json:"ban,omitempty"`
	Kick          *int           `json:"kick,omitempty"`
	Redact        *int           `json:"redact,omitempty"`
	Notifications map[string]int `json:"notifications,omitempty"`
}

func (PowerLevelsContent) EventType() ref.EventType { return EventTypePowerLevels }

// UserLevel returns the power level of a user. If the user has an
// explicit entry in the Users map, that value is returned. Otherwise
// falls back to UsersDefault. If UsersDefault is also nil (not set),
// returns 0 per the protocol default.
func (powerLevels *PowerLevelsContent) UserLevel(userID ref.UserID) int {
	if level, ok := powerLevels.Users[userID.String()]; ok {
		return level
	}
	return valueOr(powerLevels.UsersDefault, 0)
}

// EventLevel returns the level required to send an event of eventType.
// An explicit Events entry wins; otherwise state events need
// StateDefault (50 when unset) and other events EventsDefault (0 when
// unset).
func (powerLevels *PowerLevelsContent) EventLevel(eventType ref.EventType, isState bool) int {
	if level, ok := powerLevels.Events[string(eventType)]; ok {
		return level
	}
	if isState {
		return valueOr(powerLevels.StateDefault, defaultStateDefault)
	}
	return valueOr(powerLevels.EventsDefault, defaultEventsDefault)
}

// RedactLevel returns the level required to redact other users'
// events (50 when unset).
func (powerLevels *PowerLevelsContent) RedactLevel() int {
	return valueOr(powerLevels.Redact, defaultModeration)
}

// SetUserLevel sets the power level for a user. Initializes the Users
// map if nil.
func (powerLevels *PowerLevelsContent) SetUserLevel(userID ref.UserID, level int) {
	if powerLevels.Users == nil {
		powerLevels.Users = make(map[string]int)
	}
	powerLevels.Users[userID.String()] = level
}

// SetEventLevel sets the required power level for sending a given event type.
// Initializes the Events map if nil.
func (powerLevels *PowerLevelsContent) SetEventLevel(eventType ref.EventType, level int) {
	if powerLevels.Events == nil {
		powerLevels.Events = make(map[string]int)
	}
	powerLevels.Events[string(eventType)] = level
}

// PowerLevelGrants specifies user and event type power level changes to
// apply in a single read-modify-write operation. Either or both maps may
// be non-empty; nil maps are skipped.
type PowerLevelGrants struct {
	Users  map[ref.UserID]int
	Events map[ref.EventType]int
}

// Grant applies every user and event type grant.
func (powerLevels *PowerLevelsContent) Grant(grants PowerLevelGrants) {
	for userID, level := range grants.Users {
		powerLevels.SetUserLevel(userID, level)
	}
	for eventType, level := range grants.Events {
		powerLevels.SetEventLevel(eventType, level)
	}
}

func valueOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}
