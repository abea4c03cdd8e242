// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines content structs for the room event types in
// the default kind table. Event type constants (EventType*) are the
// "type" strings; Go structs define the JSON content and implement
// eventcontent.Schema so they work with eventcontent.As and
// eventcontent.FromStruct.
//
// Key event types:
//
//   - [EventTypeCreate], [EventTypeMember], [EventTypePowerLevels],
//     [EventTypeJoinRules] -- membership and authorization state
//   - [EventTypeName], [EventTypeTopic], [EventTypeAvatar] -- room
//     presentation
//   - [EventTypeMessage], [EventTypeReaction], [EventTypeRedaction] --
//     timeline events
//   - [EventTypeTyping], [EventTypePresence] -- ephemeral events
//
// [NewTextMessage], [NewThreadReply], and [NewMarkdownMessage] build
// message content; [PowerLevelsContent] supports typed
// read-modify-write of power levels.
//
// The structs only describe the fields this package knows. Fields a
// peer sends beyond them stay in the content's extra-fields sidecar and
// are never lost by decoding into a struct.
package schema
