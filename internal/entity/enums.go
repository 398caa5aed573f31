package entity

import "fmt"

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
	EmployeeOnLeave  EmployeeStatus = "on_leave"
)

type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceAway    Presence = "away"
	PresenceOffline Presence = "offline"
)

type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCancelled MeetingStatus = "cancelled"
)

type AttendeeResponse string

const (
	ResponsePending  AttendeeResponse = "pending"
	ResponseAccepted AttendeeResponse = "accepted"
	ResponseDeclined AttendeeResponse = "declined"
)

type ChannelType string

const (
	ChannelAdHoc         ChannelType = "ad_hoc"
	ChannelPublic        ChannelType = "public"
	ChannelDirectMessage ChannelType = "direct_message"
)

type ConversationStatus string

const (
	ConversationActive ConversationStatus = "active"
)

// Parse helpers fail on unknown values instead of substituting a default.

func ParseEmployeeStatus(s string) (EmployeeStatus, error) {
	switch EmployeeStatus(s) {
	case EmployeeActive, EmployeeInactive, EmployeeOnLeave:
		return EmployeeStatus(s), nil
	}
	return "", fmt.Errorf("unknown employee status %q", s)
}

func ParsePresence(s string) (Presence, error) {
	switch Presence(s) {
	case PresenceOnline, PresenceAway, PresenceOffline:
		return Presence(s), nil
	}
	return "", fmt.Errorf("unknown presence %q", s)
}

func ParseAttendeeResponse(s string) (AttendeeResponse, error) {
	switch AttendeeResponse(s) {
	case ResponsePending, ResponseAccepted, ResponseDeclined:
		return AttendeeResponse(s), nil
	}
	return "", fmt.Errorf("unknown attendee response %q", s)
}

func ParseChannelType(s string) (ChannelType, error) {
	switch ChannelType(s) {
	case ChannelAdHoc, ChannelPublic, ChannelDirectMessage:
		return ChannelType(s), nil
	}
	return "", fmt.Errorf("unknown channel type %q", s)
}
