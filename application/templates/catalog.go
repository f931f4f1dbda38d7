package templates

import (
	"fmt"

	"journeybuilder/domain/core/entities"
	vo "journeybuilder/domain/core/valueobjects"
	pkgerrors "journeybuilder/pkg/errors"
)

// Template is a palette entry the editor instantiates nodes from
type Template struct {
	Type          vo.NodeType     `json:"type"`
	Category      vo.NodeCategory `json:"category"`
	Label         string          `json:"label"`
	Description   string          `json:"description"`
	Icon          string          `json:"icon"`
	DefaultConfig vo.NodeConfig   `json:"defaultConfig"`
}

// Catalog is the fixed, ordered set of node templates
type Catalog struct {
	templates []Template
}

// NewCatalog returns the built-in palette
func NewCatalog() *Catalog {
	return &Catalog{templates: builtin()}
}

// All returns every template in palette order
func (c *Catalog) All() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// ByCategory returns the templates of one palette section
func (c *Catalog) ByCategory(category vo.NodeCategory) []Template {
	var out []Template
	for _, t := range c.templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Find looks a template up by type. category disambiguates types that appear
// in more than one palette section; empty picks the first match.
func (c *Catalog) Find(nodeType vo.NodeType, category vo.NodeCategory) (Template, bool) {
	for _, t := range c.templates {
		if t.Type == nodeType && (category == "" || t.Category == category) {
			return t, true
		}
	}
	return Template{}, false
}

// Instantiate creates an unconfigured node from t at pos. The node keeps the
// template's category.
func Instantiate(t Template, pos vo.Position) (entities.JourneyNode, error) {
	if !t.Type.IsKnown() {
		return entities.JourneyNode{}, pkgerrors.NewValidationError(fmt.Sprintf("unknown node type %q", t.Type))
	}
	if !t.Category.IsValid() {
		return entities.JourneyNode{}, pkgerrors.NewValidationError(fmt.Sprintf("invalid category %q", t.Category))
	}
	if _, err := vo.NewPosition(pos.X, pos.Y); err != nil {
		return entities.JourneyNode{}, err
	}

	cfg := t.DefaultConfig
	if cfg == nil {
		cfg, _ = vo.DefaultNodeConfig(t.Type)
	}
	if err := vo.ValidateNodeConfig(t.Type, cfg); err != nil {
		return entities.JourneyNode{}, err
	}

	id := vo.NewNodeID(t.Type)
	return entities.JourneyNode{
		ID:       id,
		Type:     t.Type,
		Position: pos,
		Data: entities.NodeData{
			ID:           id,
			Type:         t.Type,
			Category:     t.Category,
			Label:        t.Label,
			Description:  t.Description,
			Config:       cfg,
			IsConfigured: false,
		},
	}, nil
}

func builtin() []Template {
	trigger := func(nt vo.NodeType, label, desc, icon string, cfg vo.NodeConfig) Template {
		return Template{Type: nt, Category: vo.CategoryTrigger, Label: label, Description: desc, Icon: icon, DefaultConfig: cfg}
	}
	action := func(nt vo.NodeType, label, desc, icon string, cfg vo.NodeConfig) Template {
		return Template{Type: nt, Category: vo.CategoryAction, Label: label, Description: desc, Icon: icon, DefaultConfig: cfg}
	}
	condition := func(nt vo.NodeType, label, desc, icon string, cfg vo.NodeConfig) Template {
		return Template{Type: nt, Category: vo.CategoryCondition, Label: label, Description: desc, Icon: icon, DefaultConfig: cfg}
	}
	flow := func(nt vo.NodeType, label, desc, icon string, cfg vo.NodeConfig) Template {
		return Template{Type: nt, Category: vo.CategoryFlow, Label: label, Description: desc, Icon: icon, DefaultConfig: cfg}
	}

	return []Template{
		trigger(vo.TypeOccurrenceOfEvent, "Occurrence of Event", "Start when a user performs an event", "Zap", vo.EventTriggerConfig{}),
		trigger(vo.TypeEnterSegment, "Enter Segment", "Start when a user enters a segment", "LogIn", vo.SegmentRefConfig{}),
		trigger(vo.TypeExitSegment, "Exit Segment", "Start when a user leaves a segment", "LogOut", vo.SegmentRefConfig{}),
		trigger(vo.TypeIsInSegment, "Is in Segment", "Start for users already in a segment", "Users", vo.SegmentRefConfig{}),
		trigger(vo.TypeChangeUserAttribute, "Change in User Attribute", "Start when a user attribute changes", "RefreshCw", vo.AttributeChangeConfig{}),
		trigger(vo.TypeSpecificUsers, "Specific Users", "Start for an uploaded list of users", "FileSpreadsheet", vo.SpecificUsersConfig{}),
		trigger(vo.TypeEnterGeofence, "Enter Geofence", "Start when a user enters an area", "MapPin", vo.GeofenceConfig{}),
		trigger(vo.TypeExitGeofence, "Exit Geofence", "Start when a user leaves an area", "MapPinOff", vo.GeofenceConfig{}),

		action(vo.TypeSendEmail, "Send Email", "Send an email message", "Mail", vo.EmailConfig{}),
		action(vo.TypeSendSMS, "Send SMS", "Send a text message", "MessageSquare", vo.TextMessageConfig{}),
		action(vo.TypeSendRCS, "Send RCS", "Send a rich communication message", "MessageCircle", vo.TextMessageConfig{}),
		action(vo.TypeSendPush, "Send Push", "Send a mobile push notification", "Bell", vo.PushConfig{}),
		action(vo.TypeSendWhatsApp, "Send WhatsApp", "Send a WhatsApp message", "MessageCircle", vo.TextMessageConfig{}),
		action(vo.TypeSendWebPush, "Send Web Push", "Send a browser push notification", "Globe", vo.PushConfig{}),
		action(vo.TypeShowInApp, "Show In-App", "Show an in-app message", "Smartphone", vo.OnsiteMessageConfig{}),
		action(vo.TypeShowOnsite, "Show On-site", "Show an on-site message", "MonitorSmartphone", vo.OnsiteMessageConfig{}),
		action(vo.TypeShowAppInline, "App Inline Content", "Render inline content in the app", "LayoutTemplate", vo.OnsiteMessageConfig{}),
		action(vo.TypeShowWebInline, "Web Inline Content", "Render inline content on the web", "Layout", vo.OnsiteMessageConfig{}),
		action(vo.TypeCallAPI, "Call API", "Send a webhook request", "Webhook", vo.APICallConfig{Method: "POST"}),
		action(vo.TypeSetUserAttribute, "Set User Attribute", "Update a user attribute", "UserCog", vo.SetAttributeConfig{}),

		condition(vo.TypeIsInSegment, "Is in Segment", "Branch on segment membership", "Users", vo.SegmentRefConfig{}),
		condition(vo.TypeIsInList, "Is in List", "Branch on list membership", "List", vo.ListMembershipConfig{}),
		condition(vo.TypeHasDoneEvent, "Has Done Event", "Branch on a past event", "CheckCircle", vo.HasDoneEventConfig{}),
		condition(vo.TypeCheckUserAttribute, "Check User Attribute", "Branch on an attribute value", "UserCheck", vo.CheckAttributeConfig{Operator: "equals"}),
		condition(vo.TypeIsReachable, "Is Reachable", "Branch on channel reachability", "Radio", vo.ReachabilityConfig{}),
		condition(vo.TypeCheckBestChannel, "Check Best Channel", "Branch on the best performing channel", "Shuffle", vo.BestChannelConfig{}),

		flow(vo.TypeWaitTime, "Wait for Time", "Pause for a fixed duration", "Clock", vo.WaitTimeConfig{Duration: 1, Unit: "hours"}),
		flow(vo.TypeWaitTimeSlot, "Wait for Time Slot", "Pause until a time window", "Calendar", vo.WaitTimeSlotConfig{}),
		flow(vo.TypeWaitEvent, "Wait for Event", "Pause until an event or timeout", "Hourglass", vo.WaitEventConfig{}),
		flow(vo.TypeWaitDate, "Wait for Date", "Pause until a specific date", "CalendarDays", vo.WaitDateConfig{}),
		flow(vo.TypeSplit, "Split", "Divide users between branches", "GitBranch", vo.SplitConfig{SplitType: "percentage", BranchA: 50, BranchB: 50}),
		flow(vo.TypeEndJourney, "End Journey", "Exit users from the journey", "XCircle", vo.EndJourneyConfig{}),
	}
}
