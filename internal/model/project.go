package model

import "time"

// Project represents a row in the `projects` table. Tickets are not
// embedded at the store level; they are attached on read by the view
// builders.
//
// Fields:
//  ID          – primary key identifier of the project.
//  Title       – short non-empty project title.
//  Description – non-empty free-form description.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Project struct {
	ID          uint64    `json:"id"`          // projects.id
	Title       string    `json:"title"`       // projects.title
	Description string    `json:"description"` // projects.description
	CreatedAt   time.Time `json:"createdAt"`   // projects.created_at
	UpdatedAt   time.Time `json:"updatedAt"`   // projects.updated_at
}
