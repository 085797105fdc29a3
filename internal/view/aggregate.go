// Package view builds the denormalized read-models served by the API
// out of raw records. Builders are pure functions over slices: callers
// fetch each collection once and everything is joined in memory by
// identifier, so rendering a list never turns into per-record lookups.
package view

import "github.com/tickethub/tickethub/internal/model"

// usersByID indexes users for assignee resolution.
func usersByID(users []model.User) map[uint64]model.User {
	m := make(map[uint64]model.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return m
}

// ticketView resolves the assignee from the prepared index. Tickets
// whose userId does not resolve (or is absent) carry no user field.
func ticketView(t model.Ticket, users map[uint64]model.User) model.TicketView {
	tv := model.TicketView{Ticket: t}
	if t.UserID != nil {
		if u, ok := users[*t.UserID]; ok {
			pub := u.Public()
			tv.User = &pub
		}
	}
	return tv
}

// BuildTicketView attaches the password-stripped assignee to a single
// ticket, if the assignee resolves.
func BuildTicketView(t model.Ticket, users []model.User) model.TicketView {
	return ticketView(t, usersByID(users))
}

// BuildTicketViews is the batched form of BuildTicketView. Ticket
// order follows the input slice.
func BuildTicketViews(tickets []model.Ticket, users []model.User) []model.TicketView {
	idx := usersByID(users)
	out := make([]model.TicketView, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ticketView(t, idx))
	}
	return out
}

// BuildProjectView attaches to the project the tickets that belong to
// it, in the order they appear in the tickets slice (the repositories
// return creation order, so the result is deterministic for a given
// store state). Each attached ticket resolves its assignee.
func BuildProjectView(p model.Project, tickets []model.Ticket, users []model.User) model.ProjectView {
	idx := usersByID(users)
	pv := model.ProjectView{Project: p, Tickets: make([]model.TicketView, 0)}
	for _, t := range tickets {
		if t.ProjectID == p.ID {
			pv.Tickets = append(pv.Tickets, ticketView(t, idx))
		}
	}
	return pv
}

// BuildProjectViews batches BuildProjectView over every project.
// Tickets are grouped by project in one pass first; a project with no
// tickets still appears, with an empty tickets array.
func BuildProjectViews(projects []model.Project, tickets []model.Ticket, users []model.User) []model.ProjectView {
	idx := usersByID(users)
	byProject := make(map[uint64][]model.TicketView, len(projects))
	for _, t := range tickets {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], ticketView(t, idx))
	}
	out := make([]model.ProjectView, 0, len(projects))
	for _, p := range projects {
		pv := model.ProjectView{Project: p, Tickets: byProject[p.ID]}
		if pv.Tickets == nil {
			pv.Tickets = make([]model.TicketView, 0)
		}
		out = append(out, pv)
	}
	return out
}

// BuildUserView attaches the tickets assigned to the user and the
// deduplicated projects those tickets reference. A project appears
// once no matter how many of the user's tickets point at it, in
// first-seen order.
func BuildUserView(u model.User, tickets []model.Ticket, projects []model.Project) model.UserView {
	projectIdx := make(map[uint64]model.Project, len(projects))
	for _, p := range projects {
		projectIdx[p.ID] = p
	}
	uv := model.UserView{
		PublicUser: u.Public(),
		Projects:   make([]model.Project, 0),
		Tickets:    make([]model.Ticket, 0),
	}
	seen := make(map[uint64]bool)
	for _, t := range tickets {
		if t.UserID == nil || *t.UserID != u.ID {
			continue
		}
		uv.Tickets = append(uv.Tickets, t)
		if !seen[t.ProjectID] {
			if p, ok := projectIdx[t.ProjectID]; ok {
				uv.Projects = append(uv.Projects, p)
				seen[t.ProjectID] = true
			}
		}
	}
	return uv
}

// BuildUserViews batches BuildUserView over every user.
func BuildUserViews(users []model.User, tickets []model.Ticket, projects []model.Project) []model.UserView {
	out := make([]model.UserView, 0, len(users))
	for _, u := range users {
		out = append(out, BuildUserView(u, tickets, projects))
	}
	return out
}
