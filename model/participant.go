package model

import (
	"strconv"
	"strings"
)

// Participant is a document in the users collection.
type Participant struct {
	ID            string          `firestore:"-" json:"id"`
	FacebookName  string          `firestore:"facebookName,omitempty" json:"facebookName,omitempty"`
	Name          string          `firestore:"name,omitempty" json:"name,omitempty"`
	TicketID      any             `firestore:"ticketId" json:"ticketId"` // stored as a number or a string
	Participation []Participation `firestore:"participation" json:"participation"`
	Answers       []bool          `firestore:"answers,omitempty" json:"answers,omitempty"`
}

// Participation links a participant to a group they may attend.
type Participation struct {
	GroupID string `firestore:"groupId" json:"groupId"`
	Attend  bool   `firestore:"attend" json:"attend"`
}

// Group is a document in the groups collection.
type Group struct {
	ID        string    `firestore:"-" json:"id"`
	GroupName string    `firestore:"groupName" json:"groupName"`
	Leader    *Contact  `firestore:"leader" json:"leader,omitempty"`
	Members   []Contact `firestore:"members" json:"members"`
}

// Contact is a person listed on a group roster.
type Contact struct {
	Name         string `firestore:"name" json:"name"`
	FacebookLink string `firestore:"facebookLink" json:"facebookLink"`
}

// DisplayName returns whichever name field the record carries.
func (p Participant) DisplayName() string {
	if p.FacebookName != "" {
		return p.FacebookName
	}
	return p.Name
}

// Ticket returns the stored ticket id in its canonical string form.
func (p Participant) Ticket() string {
	return NormalizeTicket(p.TicketID)
}

// GroupIDs returns the group references in participation order.
func (p Participant) GroupIDs() []string {
	ids := make([]string, len(p.Participation))
	for i, part := range p.Participation {
		ids[i] = part.GroupID
	}
	return ids
}

// NormalizeTicket turns a ticket id that arrived as a JSON number, a Firestore
// integer or a string into one comparable form. Integral floats lose their
// fractional part so 1234 and 1234.0 compare equal.
func NormalizeTicket(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
