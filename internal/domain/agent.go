package domain

import "time"

type AgentRole string

const (
	AgentRoleAgent           AgentRole = "agent"
	AgentRoleCoordinator     AgentRole = "coordinator"
	AgentRoleAreaCoordinator AgentRole = "area_coordinator"
	AgentRoleAdmin           AgentRole = "admin"
)

// Agent is a selling agent or one of the roles managing them. Identity is
// resolved by the auth layer; this core only reads the directory.
type Agent struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Role          AgentRole `json:"role"`
	CoordinatorID *uint     `json:"coordinator_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
