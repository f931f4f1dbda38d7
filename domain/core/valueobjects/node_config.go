package valueobjects

import (
	"encoding/json"
	"fmt"

	pkgerrors "journeybuilder/pkg/errors"
	"journeybuilder/pkg/utils"
)

// NodeConfig is the type-specific settings bag of a node. Each node type maps
// to exactly one variant, all of which hold scalar fields only so copying a
// config by value never shares state between nodes.
type NodeConfig interface {
	ConfigKind() ConfigKind
}

// ConfigKind names a NodeConfig variant
type ConfigKind string

const (
	KindEventTrigger    ConfigKind = "event-trigger"
	KindSegmentRef      ConfigKind = "segment-ref"
	KindAttributeChange ConfigKind = "attribute-change"
	KindSpecificUsers   ConfigKind = "specific-users"
	KindGeofence        ConfigKind = "geofence"
	KindEmail           ConfigKind = "email"
	KindTextMessage     ConfigKind = "text-message"
	KindPush            ConfigKind = "push"
	KindOnsiteMessage   ConfigKind = "onsite-message"
	KindAPICall         ConfigKind = "api-call"
	KindSetAttribute    ConfigKind = "set-attribute"
	KindWaitTime        ConfigKind = "wait-time"
	KindWaitTimeSlot    ConfigKind = "wait-time-slot"
	KindWaitEvent       ConfigKind = "wait-event"
	KindWaitDate        ConfigKind = "wait-date"
	KindSplit           ConfigKind = "split"
	KindCheckAttribute  ConfigKind = "check-attribute"
	KindHasDoneEvent    ConfigKind = "has-done-event"
	KindListMembership  ConfigKind = "list-membership"
	KindReachability    ConfigKind = "reachability"
	KindBestChannel     ConfigKind = "best-channel"
	KindEndJourney      ConfigKind = "end-journey"
)

type EventTriggerConfig struct {
	EventName       string `json:"eventName,omitempty" validate:"max=200"`
	EventProperties string `json:"eventProperties,omitempty"`
}

type SegmentRefConfig struct {
	SegmentID string `json:"segmentId,omitempty"`
}

type AttributeChangeConfig struct {
	Attribute string `json:"attribute,omitempty"`
}

// SpecificUsersConfig holds a comma or newline separated list of user ids
type SpecificUsersConfig struct {
	UserIDs string `json:"userIds,omitempty"`
}

type GeofenceConfig struct {
	GeofenceID string  `json:"geofenceId,omitempty"`
	Radius     float64 `json:"radius,omitempty" validate:"gte=0"`
}

type EmailConfig struct {
	TemplateID string `json:"templateId,omitempty"`
	Subject    string `json:"subject,omitempty" validate:"max=255"`
	SenderName string `json:"senderName,omitempty" validate:"max=100"`
}

// TextMessageConfig is shared by SMS, RCS and WhatsApp
type TextMessageConfig struct {
	TemplateID string `json:"templateId,omitempty"`
	Content    string `json:"content,omitempty"`
}

type PushConfig struct {
	Title string `json:"title,omitempty" validate:"max=100"`
	Body  string `json:"body,omitempty"`
	URL   string `json:"url,omitempty" validate:"omitempty,url"`
}

// OnsiteMessageConfig is shared by in-app, onsite and inline placements
type OnsiteMessageConfig struct {
	TemplateID string `json:"templateId,omitempty"`
	Content    string `json:"content,omitempty"`
}

type APICallConfig struct {
	Method string `json:"method,omitempty" validate:"omitempty,oneof=GET POST PUT PATCH DELETE"`
	URL    string `json:"url,omitempty" validate:"omitempty,url"`
	Body   string `json:"body,omitempty"`
}

type SetAttributeConfig struct {
	Attribute string `json:"attribute,omitempty"`
	Value     string `json:"value,omitempty"`
}

type WaitTimeConfig struct {
	Duration int    `json:"duration,omitempty" validate:"omitempty,min=1"`
	Unit     string `json:"unit,omitempty" validate:"omitempty,oneof=minutes hours days weeks"`
}

type WaitTimeSlotConfig struct {
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
}

type WaitEventConfig struct {
	EventName string `json:"eventName,omitempty"`
	Timeout   string `json:"timeout,omitempty"`
}

type WaitDateConfig struct {
	Date string `json:"date,omitempty"`
}

type SplitConfig struct {
	SplitType string `json:"splitType,omitempty" validate:"omitempty,oneof=percentage random attribute"`
	BranchA   int    `json:"branchA,omitempty" validate:"gte=0,lte=100"`
	BranchB   int    `json:"branchB,omitempty" validate:"gte=0,lte=100"`
}

type CheckAttributeConfig struct {
	Attribute string `json:"attribute,omitempty"`
	Operator  string `json:"operator,omitempty" validate:"omitempty,oneof=equals not_equals contains greater_than less_than is_set is_not_set"`
	Value     string `json:"value,omitempty"`
}

type HasDoneEventConfig struct {
	EventName string `json:"eventName,omitempty"`
	Timeframe string `json:"timeframe,omitempty"`
}

type ListMembershipConfig struct {
	ListID string `json:"listId,omitempty"`
}

type ReachabilityConfig struct {
	Channel string `json:"channel,omitempty" validate:"omitempty,oneof=email sms push whatsapp web-push rcs"`
}

type BestChannelConfig struct {
	Channels string `json:"channels,omitempty"`
}

type EndJourneyConfig struct{}

func (EventTriggerConfig) ConfigKind() ConfigKind    { return KindEventTrigger }
func (SegmentRefConfig) ConfigKind() ConfigKind      { return KindSegmentRef }
func (AttributeChangeConfig) ConfigKind() ConfigKind { return KindAttributeChange }
func (SpecificUsersConfig) ConfigKind() ConfigKind   { return KindSpecificUsers }
func (GeofenceConfig) ConfigKind() ConfigKind        { return KindGeofence }
func (EmailConfig) ConfigKind() ConfigKind           { return KindEmail }
func (TextMessageConfig) ConfigKind() ConfigKind     { return KindTextMessage }
func (PushConfig) ConfigKind() ConfigKind            { return KindPush }
func (OnsiteMessageConfig) ConfigKind() ConfigKind   { return KindOnsiteMessage }
func (APICallConfig) ConfigKind() ConfigKind         { return KindAPICall }
func (SetAttributeConfig) ConfigKind() ConfigKind    { return KindSetAttribute }
func (WaitTimeConfig) ConfigKind() ConfigKind        { return KindWaitTime }
func (WaitTimeSlotConfig) ConfigKind() ConfigKind    { return KindWaitTimeSlot }
func (WaitEventConfig) ConfigKind() ConfigKind       { return KindWaitEvent }
func (WaitDateConfig) ConfigKind() ConfigKind        { return KindWaitDate }
func (SplitConfig) ConfigKind() ConfigKind           { return KindSplit }
func (CheckAttributeConfig) ConfigKind() ConfigKind  { return KindCheckAttribute }
func (HasDoneEventConfig) ConfigKind() ConfigKind    { return KindHasDoneEvent }
func (ListMembershipConfig) ConfigKind() ConfigKind  { return KindListMembership }
func (ReachabilityConfig) ConfigKind() ConfigKind    { return KindReachability }
func (BestChannelConfig) ConfigKind() ConfigKind     { return KindBestChannel }
func (EndJourneyConfig) ConfigKind() ConfigKind      { return KindEndJourney }

type configDecoder func(raw []byte) (NodeConfig, error)

func decodeAs[T NodeConfig](raw []byte) (NodeConfig, error) {
	var cfg T
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

var configDecoders = map[NodeType]configDecoder{
	TypeOccurrenceOfEvent:   decodeAs[EventTriggerConfig],
	TypeEnterSegment:        decodeAs[SegmentRefConfig],
	TypeExitSegment:         decodeAs[SegmentRefConfig],
	TypeIsInSegment:         decodeAs[SegmentRefConfig],
	TypeChangeUserAttribute: decodeAs[AttributeChangeConfig],
	TypeSpecificUsers:       decodeAs[SpecificUsersConfig],
	TypeEnterGeofence:       decodeAs[GeofenceConfig],
	TypeExitGeofence:        decodeAs[GeofenceConfig],

	TypeSendEmail:        decodeAs[EmailConfig],
	TypeSendSMS:          decodeAs[TextMessageConfig],
	TypeSendRCS:          decodeAs[TextMessageConfig],
	TypeSendWhatsApp:     decodeAs[TextMessageConfig],
	TypeSendPush:         decodeAs[PushConfig],
	TypeSendWebPush:      decodeAs[PushConfig],
	TypeShowInApp:        decodeAs[OnsiteMessageConfig],
	TypeShowOnsite:       decodeAs[OnsiteMessageConfig],
	TypeShowAppInline:    decodeAs[OnsiteMessageConfig],
	TypeShowWebInline:    decodeAs[OnsiteMessageConfig],
	TypeCallAPI:          decodeAs[APICallConfig],
	TypeSetUserAttribute: decodeAs[SetAttributeConfig],

	TypeIsInList:           decodeAs[ListMembershipConfig],
	TypeHasDoneEvent:       decodeAs[HasDoneEventConfig],
	TypeCheckUserAttribute: decodeAs[CheckAttributeConfig],
	TypeIsReachable:        decodeAs[ReachabilityConfig],
	TypeCheckBestChannel:   decodeAs[BestChannelConfig],

	TypeWaitTime:     decodeAs[WaitTimeConfig],
	TypeWaitTimeSlot: decodeAs[WaitTimeSlotConfig],
	TypeWaitEvent:    decodeAs[WaitEventConfig],
	TypeWaitDate:     decodeAs[WaitDateConfig],
	TypeSplit:        decodeAs[SplitConfig],
	TypeEndJourney:   decodeAs[EndJourneyConfig],
}

// DefaultNodeConfig returns the empty variant for a node type
func DefaultNodeConfig(t NodeType) (NodeConfig, bool) {
	decode, ok := configDecoders[t]
	if !ok {
		return nil, false
	}
	cfg, _ := decode(nil)
	return cfg, true
}

// DecodeNodeConfig decodes a raw JSON object into the variant owned by t.
// Null or empty input yields the empty variant.
func DecodeNodeConfig(t NodeType, raw json.RawMessage) (NodeConfig, error) {
	decode, ok := configDecoders[t]
	if !ok {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("unknown node type %q", t)).WithCode(pkgerrors.CodeUnknownConfig)
	}
	cfg, err := decode(raw)
	if err != nil {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("invalid config for %s", t)).WithCause(err)
	}
	return cfg, nil
}

// ValidateNodeConfig checks that cfg is the variant t expects and that its
// fields satisfy their constraints
func ValidateNodeConfig(t NodeType, cfg NodeConfig) error {
	expected, ok := DefaultNodeConfig(t)
	if !ok {
		return pkgerrors.NewValidationError(fmt.Sprintf("unknown node type %q", t))
	}
	if cfg == nil {
		return nil
	}
	if cfg.ConfigKind() != expected.ConfigKind() {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("%s nodes take a %s config, got %s", t, expected.ConfigKind(), cfg.ConfigKind()))
	}
	return utils.ValidateStruct(cfg)
}
