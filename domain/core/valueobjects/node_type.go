package valueobjects

import "strings"

// NodeCategory partitions node types into the four editor palettes
type NodeCategory string

const (
	CategoryTrigger   NodeCategory = "trigger"
	CategoryAction    NodeCategory = "action"
	CategoryCondition NodeCategory = "condition"
	CategoryFlow      NodeCategory = "flow"
)

// IsValid reports whether c is one of the four categories
func (c NodeCategory) IsValid() bool {
	switch c {
	case CategoryTrigger, CategoryAction, CategoryCondition, CategoryFlow:
		return true
	}
	return false
}

// NodeType is the closed enumeration of journey steps
type NodeType string

// Triggers
const (
	TypeOccurrenceOfEvent   NodeType = "occurrence-of-event"
	TypeEnterSegment        NodeType = "enter-segment"
	TypeExitSegment         NodeType = "exit-segment"
	TypeIsInSegment         NodeType = "is-in-segment"
	TypeChangeUserAttribute NodeType = "change-user-attribute"
	TypeSpecificUsers       NodeType = "specific-users"
	TypeEnterGeofence       NodeType = "enter-geofence"
	TypeExitGeofence        NodeType = "exit-geofence"
)

// Actions
const (
	TypeSendEmail        NodeType = "send-email"
	TypeSendSMS          NodeType = "send-sms"
	TypeSendRCS          NodeType = "send-rcs"
	TypeSendPush         NodeType = "send-push"
	TypeSendWhatsApp     NodeType = "send-whatsapp"
	TypeSendWebPush      NodeType = "send-web-push"
	TypeShowInApp        NodeType = "show-in-app"
	TypeShowOnsite       NodeType = "show-onsite"
	TypeShowAppInline    NodeType = "show-app-inline"
	TypeShowWebInline    NodeType = "show-web-inline"
	TypeCallAPI          NodeType = "call-api"
	TypeSetUserAttribute NodeType = "set-user-attribute"
)

// Conditions. "is-in-segment" is shared with the trigger palette.
const (
	TypeIsInList           NodeType = "is-in-list"
	TypeHasDoneEvent       NodeType = "has-done-event"
	TypeCheckUserAttribute NodeType = "check-user-attribute"
	TypeIsReachable        NodeType = "is-reachable"
	TypeCheckBestChannel   NodeType = "check-best-channel"
)

// Flow control
const (
	TypeWaitTime     NodeType = "wait-time"
	TypeWaitTimeSlot NodeType = "wait-time-slot"
	TypeWaitEvent    NodeType = "wait-event"
	TypeWaitDate     NodeType = "wait-date"
	TypeSplit        NodeType = "split"
	TypeEndJourney   NodeType = "end-journey"
)

var defaultCategories = map[NodeType]NodeCategory{
	TypeOccurrenceOfEvent:   CategoryTrigger,
	TypeEnterSegment:        CategoryTrigger,
	TypeExitSegment:         CategoryTrigger,
	TypeChangeUserAttribute: CategoryTrigger,
	TypeSpecificUsers:       CategoryTrigger,
	TypeEnterGeofence:       CategoryTrigger,
	TypeExitGeofence:        CategoryTrigger,

	TypeSendEmail:        CategoryAction,
	TypeSendSMS:          CategoryAction,
	TypeSendRCS:          CategoryAction,
	TypeSendPush:         CategoryAction,
	TypeSendWhatsApp:     CategoryAction,
	TypeSendWebPush:      CategoryAction,
	TypeShowInApp:        CategoryAction,
	TypeShowOnsite:       CategoryAction,
	TypeShowAppInline:    CategoryAction,
	TypeShowWebInline:    CategoryAction,
	TypeCallAPI:          CategoryAction,
	TypeSetUserAttribute: CategoryAction,

	TypeIsInSegment:        CategoryCondition,
	TypeIsInList:           CategoryCondition,
	TypeHasDoneEvent:       CategoryCondition,
	TypeCheckUserAttribute: CategoryCondition,
	TypeIsReachable:        CategoryCondition,
	TypeCheckBestChannel:   CategoryCondition,

	TypeWaitTime:     CategoryFlow,
	TypeWaitTimeSlot: CategoryFlow,
	TypeWaitEvent:    CategoryFlow,
	TypeWaitDate:     CategoryFlow,
	TypeSplit:        CategoryFlow,
	TypeEndJourney:   CategoryFlow,
}

// AllNodeTypes lists every node type in palette order
func AllNodeTypes() []NodeType {
	return []NodeType{
		TypeOccurrenceOfEvent, TypeEnterSegment, TypeExitSegment, TypeIsInSegment,
		TypeChangeUserAttribute, TypeSpecificUsers, TypeEnterGeofence, TypeExitGeofence,
		TypeSendEmail, TypeSendSMS, TypeSendRCS, TypeSendPush, TypeSendWhatsApp, TypeSendWebPush,
		TypeShowInApp, TypeShowOnsite, TypeShowAppInline, TypeShowWebInline, TypeCallAPI, TypeSetUserAttribute,
		TypeIsInList, TypeHasDoneEvent, TypeCheckUserAttribute, TypeIsReachable, TypeCheckBestChannel,
		TypeWaitTime, TypeWaitTimeSlot, TypeWaitEvent, TypeWaitDate, TypeSplit, TypeEndJourney,
	}
}

// IsKnown reports whether t belongs to the enumeration
func (t NodeType) IsKnown() bool {
	_, ok := defaultCategories[t]
	return ok
}

// DefaultCategory derives the category of a node type. A node created from a
// template keeps the template's category instead, which matters for
// "is-in-segment" since it appears in both the trigger and condition palettes.
func (t NodeType) DefaultCategory() (NodeCategory, bool) {
	c, ok := defaultCategories[t]
	return c, ok
}

// IsWait reports whether the type is one of the wait steps
func (t NodeType) IsWait() bool {
	return strings.Contains(string(t), "wait")
}
