package domain

type RevisionAction string

const (
	ActionColumnCreated  RevisionAction = "column_created"
	ActionColumnDeleted  RevisionAction = "column_deleted"
	ActionCardCreated    RevisionAction = "card_created"
	ActionCardAssigned   RevisionAction = "card_assigned"
	ActionCardTagged     RevisionAction = "card_tags_updated"
	ActionCardDueDateSet RevisionAction = "card_due_date_updated"
	ActionCommentAdded   RevisionAction = "comment_added"
	ActionTagCreated     RevisionAction = "tag_created"
	ActionTagDeleted     RevisionAction = "tag_deleted"
)

type DateField string

const (
	DateFieldDue     DateField = "dueDate"
	DateFieldCreated DateField = "createdAt"
)

// ValidDateFields is the canonical set of accepted filter preset date fields.
var ValidDateFields = map[string]bool{
	string(DateFieldDue):     true,
	string(DateFieldCreated): true,
}
