package flow

import (
	"EventWebhook/model"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Summary lists the roster of every group whose answer was yes, between a
// header and a closing thank-you.
func Summary(groups []model.Group, answers []bool) []model.Message {
	joined := lo.Filter(groups, func(_ model.Group, i int) bool {
		return i < len(answers) && answers[i]
	})

	msgs := make([]model.Message, 0, len(joined)+2)
	msgs = append(msgs, model.TextMessage(detailsText))
	msgs = append(msgs, lo.Map(joined, func(g model.Group, _ int) model.Message {
		return model.TextMessage(groupDetails(g))
	})...)
	return append(msgs, model.TextMessage(thankYouText))
}

func groupDetails(g model.Group) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n\nGroup Name: %s\n", g.GroupName)
	if g.Leader != nil && g.Leader.Name != "" {
		fmt.Fprintf(&b, "Leader: %s (%s)", g.Leader.Name, g.Leader.FacebookLink)
	}
	b.WriteString("\nMembers: \n")
	for _, m := range g.Members {
		fmt.Fprintf(&b, "→%s (%s)\n", m.Name, m.FacebookLink)
	}
	return b.String()
}
