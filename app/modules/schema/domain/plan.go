package schemadomain

import (
	"fmt"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// StepKind is the Directus endpoint a step posts to.
type StepKind string

const (
	KindCollection StepKind = "collection"
	KindField      StepKind = "field"
	KindRelation   StepKind = "relation"
)

// Step is one schema change. Exactly one of the payloads is set, matching Kind.
type Step struct {
	Kind       StepKind             `json:"kind"`
	Name       string               `json:"name"`
	Collection *directus.Collection `json:"-"`
	Field      *directus.Field      `json:"-"`
	Relation   *directus.Relation   `json:"-"`
}

const filesCollection = "directus_files"

type collectionSpec struct {
	name   string
	icon   string
	note   string
	fields []directus.Field
}

// Plan returns every step needed to create the dashboard collections, in the
// order they must be applied: collections, then fields, then relations.
func Plan() []Step {
	specs := collections()

	steps := make([]Step, 0, 64)
	for _, c := range specs {
		col := directus.Collection{
			Collection: c.name,
			Meta:       map[string]any{"icon": c.icon, "note": c.note},
			Schema:     map[string]any{},
			Fields:     []directus.Field{primaryKey(), createdAt()},
		}
		steps = append(steps, Step{Kind: KindCollection, Name: c.name, Collection: &col})
	}
	for _, c := range specs {
		for _, f := range c.fields {
			f.Collection = c.name
			steps = append(steps, Step{Kind: KindField, Name: c.name + "." + f.Field, Field: &f})
		}
	}
	for _, r := range relations() {
		steps = append(steps, Step{
			Kind:     KindRelation,
			Name:     fmt.Sprintf("%s.%s -> %s", r.Collection, r.Field, r.RelatedCollection),
			Relation: &r,
		})
	}
	return steps
}

func collections() []collectionSpec {
	return []collectionSpec{
		{
			name: eventdomain.EventsCollection, icon: "event", note: "Events",
			fields: []directus.Field{
				stringField("name", true),
				textField("description"),
				stringField("location", false),
				timestampField("start_date"),
				timestampField("end_date"),
				dropdownField("status", string(eventdomain.StatusDraft), statusChoices(eventdomain.Statuses)...),
				integerField("capacity"),
				stringField("organizer", false),
				updatedAt(),
			},
		},
		{
			name: providerdomain.ProvidersCollection, icon: "storefront", note: "Vendors",
			fields: []directus.Field{
				stringField("name", true),
				stringField("contact_name", false),
				stringField("email", false),
				stringField("phone", false),
				stringField("category", false),
				stringField("tax_id", false),
				dropdownField("status", string(providerdomain.StatusActive),
					string(providerdomain.StatusActive), string(providerdomain.StatusInactive)),
				textField("notes"),
				updatedAt(),
			},
		},
		{
			name: providerdomain.TeamMembersCollection, icon: "badge", note: "Provider staff",
			fields: []directus.Field{
				foreignKey("provider_id"),
				foreignKey("event_id"),
				stringField("first_name", true),
				stringField("last_name", true),
				stringField("email", false),
				stringField("phone", false),
				stringField("role", false),
				stringField("document_number", false),
			},
		},
		{
			name: documentdomain.RequirementsCollection, icon: "rule", note: "Required documents",
			fields: []directus.Field{
				stringField("name", true),
				textField("description"),
				booleanField("is_global", false),
				foreignKey("event_id"),
				dropdownField("applies_to", string(documentdomain.AppliesToProvider),
					string(documentdomain.AppliesToProvider), string(documentdomain.AppliesToTeamMember)),
				booleanField("mandatory", true),
			},
		},
		{
			name: documentdomain.ProviderDocumentsCollection, icon: "description", note: "Documents submitted by providers",
			fields: []directus.Field{
				foreignKey("provider_id"),
				foreignKey("requirement_id"),
				foreignKey("event_id"),
				foreignKey("team_member_id"),
				fileField("file"),
				reviewField(),
				timestampField("expires_at"),
				textField("notes"),
				timestampField("reviewed_at"),
			},
		},
		{
			name: eventdomain.EventDocumentsCollection, icon: "folder", note: "Event paperwork",
			fields: []directus.Field{
				foreignKey("event_id"),
				foreignKey("requirement_id"),
				stringField("name", true),
				fileField("file"),
				reviewField(),
				textField("notes"),
			},
		},
		{
			name: eventdomain.ParticipantsCollection, icon: "group", note: "Providers assigned to events",
			fields: []directus.Field{
				foreignKey("event_id"),
				foreignKey("provider_id"),
				reviewField(),
				textField("notes"),
			},
		},
	}
}

func relations() []directus.Relation {
	rel := func(collection, field, related, onDelete string) directus.Relation {
		return directus.Relation{
			Collection:        collection,
			Field:             field,
			RelatedCollection: related,
			Schema:            map[string]any{"on_delete": onDelete},
		}
	}
	return []directus.Relation{
		rel(providerdomain.TeamMembersCollection, "provider_id", providerdomain.ProvidersCollection, "CASCADE"),
		rel(providerdomain.TeamMembersCollection, "event_id", eventdomain.EventsCollection, "SET NULL"),
		rel(documentdomain.RequirementsCollection, "event_id", eventdomain.EventsCollection, "CASCADE"),
		rel(documentdomain.ProviderDocumentsCollection, "provider_id", providerdomain.ProvidersCollection, "CASCADE"),
		rel(documentdomain.ProviderDocumentsCollection, "requirement_id", documentdomain.RequirementsCollection, "SET NULL"),
		rel(documentdomain.ProviderDocumentsCollection, "event_id", eventdomain.EventsCollection, "SET NULL"),
		rel(documentdomain.ProviderDocumentsCollection, "team_member_id", providerdomain.TeamMembersCollection, "SET NULL"),
		rel(documentdomain.ProviderDocumentsCollection, "file", filesCollection, "SET NULL"),
		rel(eventdomain.EventDocumentsCollection, "event_id", eventdomain.EventsCollection, "CASCADE"),
		rel(eventdomain.EventDocumentsCollection, "requirement_id", documentdomain.RequirementsCollection, "SET NULL"),
		rel(eventdomain.EventDocumentsCollection, "file", filesCollection, "SET NULL"),
		rel(eventdomain.ParticipantsCollection, "event_id", eventdomain.EventsCollection, "CASCADE"),
		rel(eventdomain.ParticipantsCollection, "provider_id", providerdomain.ProvidersCollection, "CASCADE"),
	}
}

func primaryKey() directus.Field {
	return directus.Field{
		Field:  "id",
		Type:   "integer",
		Meta:   map[string]any{"hidden": true, "readonly": true, "interface": "input"},
		Schema: map[string]any{"is_primary_key": true, "has_auto_increment": true},
	}
}

func createdAt() directus.Field {
	return directus.Field{
		Field: "date_created",
		Type:  "timestamp",
		Meta: map[string]any{
			"special":   []string{"date-created"},
			"interface": "datetime",
			"readonly":  true,
			"hidden":    true,
		},
	}
}

func updatedAt() directus.Field {
	return directus.Field{
		Field: "date_updated",
		Type:  "timestamp",
		Meta: map[string]any{
			"special":   []string{"date-updated"},
			"interface": "datetime",
			"readonly":  true,
			"hidden":    true,
		},
	}
}

func stringField(name string, required bool) directus.Field {
	return directus.Field{
		Field:  name,
		Type:   "string",
		Meta:   map[string]any{"interface": "input", "required": required},
		Schema: map[string]any{"is_nullable": !required},
	}
}

func textField(name string) directus.Field {
	return directus.Field{Field: name, Type: "text", Meta: map[string]any{"interface": "input-multiline"}}
}

func integerField(name string) directus.Field {
	return directus.Field{Field: name, Type: "integer", Meta: map[string]any{"interface": "input"}}
}

func booleanField(name string, def bool) directus.Field {
	return directus.Field{
		Field:  name,
		Type:   "boolean",
		Meta:   map[string]any{"interface": "boolean"},
		Schema: map[string]any{"default_value": def},
	}
}

func timestampField(name string) directus.Field {
	return directus.Field{Field: name, Type: "timestamp", Meta: map[string]any{"interface": "datetime"}}
}

func foreignKey(name string) directus.Field {
	return directus.Field{
		Field: name,
		Type:  "integer",
		Meta:  map[string]any{"interface": "select-dropdown-m2o", "special": []string{"m2o"}},
	}
}

func fileField(name string) directus.Field {
	return directus.Field{
		Field: name,
		Type:  "uuid",
		Meta:  map[string]any{"interface": "file", "special": []string{"file"}},
	}
}

func dropdownField(name, def string, values ...string) directus.Field {
	choices := make([]map[string]string, 0, len(values))
	for _, v := range values {
		choices = append(choices, map[string]string{"text": v, "value": v})
	}
	return directus.Field{
		Field: name,
		Type:  "string",
		Meta: map[string]any{
			"interface": "select-dropdown",
			"options":   map[string]any{"choices": choices},
		},
		Schema: map[string]any{"default_value": def},
	}
}

func reviewField() directus.Field {
	return dropdownField("status", string(eventdomain.ReviewPending), statusChoices(eventdomain.ReviewStatuses)...)
}

func statusChoices[S ~string](statuses []S) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
