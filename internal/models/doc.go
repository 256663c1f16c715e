// Package models defines the core domain models for Money Circles.
//
// # Entities
//
//   - User: a registered account with a wallet balance and XP progression
//   - SavingsGoal: a personal savings target owned by one user
//   - MoneyCircle: a group savings pool with a shared target and invite code
//   - CircleMember: one user's participation record within one circle
//   - CircleActivity: an immutable log entry describing a circle event
//   - Message: a chat message persisted against a circle
//
// # Design Principles
//
// 1. **Integer identity**: every entity carries a process-local monotonically
// increasing int64 ID assigned by the store, unique per entity type.
// 2. **Avoid circular references**: relationships use ID fields, never
// pointers between entities.
// 3. **Denormalized circle total**: MoneyCircle.CurrentAmount duplicates the
// sum of its members' ContributedAmount for cheap reads. Only the circle
// engine writes it, and only in lockstep with the member update.
package models
